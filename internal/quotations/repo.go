package quotations

import (
	"context"
	"fmt"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/db/models"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles quotation persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to quotation operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a quotation scoped to the studio.
func (r *Repository) FindByID(ctx context.Context, studioID, id uuid.UUID) (*models.Quotation, error) {
	var quotation models.Quotation
	if err := r.db.WithContext(ctx).
		Where("id = ? AND studio_id = ?", id, studioID).
		First(&quotation).Error; err != nil {
		return nil, err
	}
	return &quotation, nil
}

// ListByStudio returns a cursor page of quotations, newest first.
func (r *Repository) ListByStudio(ctx context.Context, studioID uuid.UUID, params pagination.Params) ([]models.Quotation, error) {
	query := r.db.WithContext(ctx).
		Where("studio_id = ?", studioID).
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Quotation
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Versions returns every version row sharing the quotation number, oldest first.
func (r *Repository) Versions(ctx context.Context, studioID uuid.UUID, quotationNumber string) ([]models.Quotation, error) {
	var rows []models.Quotation
	if err := r.db.WithContext(ctx).
		Where("studio_id = ? AND quotation_number = ?", studioID, quotationNumber).
		Order("version ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// MaxVersion returns the highest version for a quotation number, 0 when none exist.
func (r *Repository) MaxVersion(ctx context.Context, studioID uuid.UUID, quotationNumber string) (int, error) {
	var max *int
	if err := r.db.WithContext(ctx).
		Model(&models.Quotation{}).
		Where("studio_id = ? AND quotation_number = ?", studioID, quotationNumber).
		Select("MAX(version)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// Create persists a new quotation row.
func (r *Repository) Create(ctx context.Context, quotation *models.Quotation) error {
	if quotation.ID == uuid.Nil {
		quotation.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(quotation).Error
}

// CreateWithTx persists a new quotation row using the provided transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, quotation *models.Quotation) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if quotation.ID == uuid.Nil {
		quotation.ID = uuid.New()
	}
	return tx.Create(quotation).Error
}

// UpdateHeaderWithTx applies the column map inside the provided transaction.
func (r *Repository) UpdateHeaderWithTx(tx *gorm.DB, id uuid.UUID, columns map[string]any) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if len(columns) == 0 {
		return nil
	}
	return tx.Model(&models.Quotation{}).Where("id = ?", id).Updates(columns).Error
}

// SpacesFor returns the quotation's spaces ordered for display.
func (r *Repository) SpacesFor(ctx context.Context, quotationID uuid.UUID) ([]models.QuotationSpace, error) {
	var rows []models.QuotationSpace
	if err := r.db.WithContext(ctx).
		Where("quotation_id = ?", quotationID).
		Order("display_order ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ComponentsFor returns the quotation's components ordered for display.
func (r *Repository) ComponentsFor(ctx context.Context, quotationID uuid.UUID) ([]models.QuotationComponent, error) {
	var rows []models.QuotationComponent
	if err := r.db.WithContext(ctx).
		Where("quotation_id = ?", quotationID).
		Order("display_order ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// LineItemsFor returns the quotation's line items ordered for display.
func (r *Repository) LineItemsFor(ctx context.Context, quotationID uuid.UUID) ([]models.QuotationLineItem, error) {
	var rows []models.QuotationLineItem
	if err := r.db.WithContext(ctx).
		Where("quotation_id = ?", quotationID).
		Order("display_order ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ReplaceTree swaps the quotation's whole subtree for the submitted one.
// Order matters: deleting spaces cascades to components at the schema level,
// line items never cascade and are deleted explicitly; inserts then run
// parents-first so foreign keys resolve. Runs on the caller's transaction.
func (r *Repository) ReplaceTree(tx *gorm.DB, quotationID uuid.UUID, spaces []SpaceInput) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if err := deleteSubtree(tx, quotationID); err != nil {
		return err
	}

	newSpaces := make([]models.QuotationSpace, 0, len(spaces))
	for i, in := range spaces {
		order := i
		if in.SortOrder != nil {
			order = *in.SortOrder
		}
		newSpaces = append(newSpaces, models.QuotationSpace{
			ID:           uuid.New(),
			QuotationID:  quotationID,
			Name:         in.Name,
			SpaceTypeID:  in.SpaceTypeID,
			Subtotal:     in.Subtotal,
			DisplayOrder: order,
		})
	}
	if len(newSpaces) > 0 {
		if err := tx.Create(&newSpaces).Error; err != nil {
			return fmt.Errorf("inserting spaces: %w", err)
		}
	}

	spaceIDByIndex := make(map[int]uuid.UUID, len(newSpaces))
	for i := range newSpaces {
		spaceIDByIndex[i] = newSpaces[i].ID
	}

	newComponents := make([]models.QuotationComponent, 0)
	componentIDByKey := make(map[string]uuid.UUID)
	for si, spaceIn := range spaces {
		spaceID := spaceIDByIndex[si]
		for ci, compIn := range spaceIn.Components {
			order := ci
			if compIn.SortOrder != nil {
				order = *compIn.SortOrder
			}
			id := uuid.New()
			componentIDByKey[componentKey(si, ci)] = id
			sid := spaceID
			newComponents = append(newComponents, models.QuotationComponent{
				ID:                 id,
				QuotationID:        quotationID,
				SpaceID:            &sid,
				Name:               compIn.Name,
				ComponentTypeID:    compIn.ComponentTypeID,
				ComponentVariantID: compIn.ComponentVariantID,
				Subtotal:           compIn.Subtotal,
				DisplayOrder:       order,
			})
		}
	}
	if len(newComponents) > 0 {
		if err := tx.Create(&newComponents).Error; err != nil {
			return fmt.Errorf("inserting components: %w", err)
		}
	}

	// One strictly increasing display_order counter across the whole
	// flattened list, not per component.
	newItems := make([]models.QuotationLineItem, 0)
	displayOrder := 0
	appendItem := func(in LineItemInput, spaceID, componentID *uuid.UUID) {
		newItems = append(newItems, models.QuotationLineItem{
			ID:                   uuid.New(),
			QuotationID:          quotationID,
			QuotationSpaceID:     spaceID,
			QuotationComponentID: componentID,
			CostItemID:           in.CostItemID,
			Description:          in.Description,
			Quantity:             in.Quantity,
			Rate:                 in.Rate,
			Amount:               in.Amount,
			MeasurementUnit:      in.MeasurementUnit,
			DisplayOrder:         displayOrder,
		})
		displayOrder++
	}
	for si, spaceIn := range spaces {
		spaceID := spaceIDByIndex[si]
		for ci, compIn := range spaceIn.Components {
			componentID := componentIDByKey[componentKey(si, ci)]
			for _, itemIn := range compIn.LineItems {
				sid, cid := spaceID, componentID
				appendItem(itemIn, &sid, &cid)
			}
		}
		for _, itemIn := range spaceIn.LineItems {
			sid := spaceID
			appendItem(itemIn, &sid, nil)
		}
	}
	if len(newItems) > 0 {
		if err := tx.Create(&newItems).Error; err != nil {
			return fmt.Errorf("inserting line items: %w", err)
		}
	}

	return nil
}

// ReplaceLineItems handles the flat alternate PATCH shape: line items are
// deleted and reinserted with whatever space/component references the caller
// supplied, with no remapping; spaces and components are left untouched.
func (r *Repository) ReplaceLineItems(tx *gorm.DB, quotationID uuid.UUID, items []LineItemInput) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if err := tx.Where("quotation_id = ?", quotationID).Delete(&models.QuotationLineItem{}).Error; err != nil {
		return fmt.Errorf("deleting line items: %w", err)
	}

	newItems := make([]models.QuotationLineItem, 0, len(items))
	for i, in := range items {
		order := i
		if in.SortOrder != nil {
			order = *in.SortOrder
		}
		newItems = append(newItems, models.QuotationLineItem{
			ID:                   uuid.New(),
			QuotationID:          quotationID,
			QuotationSpaceID:     in.QuotationSpaceID,
			QuotationComponentID: in.QuotationComponentID,
			CostItemID:           in.CostItemID,
			Description:          in.Description,
			Quantity:             in.Quantity,
			Rate:                 in.Rate,
			Amount:               in.Amount,
			MeasurementUnit:      in.MeasurementUnit,
			DisplayOrder:         order,
		})
	}
	if len(newItems) == 0 {
		return nil
	}
	return tx.Create(&newItems).Error
}

// CopySubtree clones the source quotation's spaces, components, and line
// items onto the target quotation with fresh identifiers, preserving the
// internal references. Used by revision and duplicate.
func (r *Repository) CopySubtree(tx *gorm.DB, sourceID, targetID uuid.UUID) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}

	var spaces []models.QuotationSpace
	if err := tx.Where("quotation_id = ?", sourceID).Order("display_order ASC").Find(&spaces).Error; err != nil {
		return err
	}
	var components []models.QuotationComponent
	if err := tx.Where("quotation_id = ?", sourceID).Order("display_order ASC").Find(&components).Error; err != nil {
		return err
	}
	var items []models.QuotationLineItem
	if err := tx.Where("quotation_id = ?", sourceID).Order("display_order ASC").Find(&items).Error; err != nil {
		return err
	}

	spaceIDMap := make(map[uuid.UUID]uuid.UUID, len(spaces))
	for i := range spaces {
		fresh := uuid.New()
		spaceIDMap[spaces[i].ID] = fresh
		spaces[i].ID = fresh
		spaces[i].QuotationID = targetID
	}
	componentIDMap := make(map[uuid.UUID]uuid.UUID, len(components))
	for i := range components {
		fresh := uuid.New()
		componentIDMap[components[i].ID] = fresh
		components[i].ID = fresh
		components[i].QuotationID = targetID
		if components[i].SpaceID != nil {
			if mapped, ok := spaceIDMap[*components[i].SpaceID]; ok {
				components[i].SpaceID = &mapped
			}
		}
	}
	for i := range items {
		items[i].ID = uuid.New()
		items[i].QuotationID = targetID
		if items[i].QuotationSpaceID != nil {
			if mapped, ok := spaceIDMap[*items[i].QuotationSpaceID]; ok {
				items[i].QuotationSpaceID = &mapped
			}
		}
		if items[i].QuotationComponentID != nil {
			if mapped, ok := componentIDMap[*items[i].QuotationComponentID]; ok {
				items[i].QuotationComponentID = &mapped
			}
		}
	}

	if len(spaces) > 0 {
		if err := tx.Create(&spaces).Error; err != nil {
			return err
		}
	}
	if len(components) > 0 {
		if err := tx.Create(&components).Error; err != nil {
			return err
		}
	}
	if len(items) > 0 {
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

func deleteSubtree(tx *gorm.DB, quotationID uuid.UUID) error {
	// Components ride on the space cascade; line items need their own delete.
	if err := tx.Where("quotation_id = ?", quotationID).Delete(&models.QuotationSpace{}).Error; err != nil {
		return fmt.Errorf("deleting spaces: %w", err)
	}
	if err := tx.Where("quotation_id = ?", quotationID).Delete(&models.QuotationLineItem{}).Error; err != nil {
		return fmt.Errorf("deleting line items: %w", err)
	}
	return nil
}

func componentKey(spaceIndex, componentIndex int) string {
	return fmt.Sprintf("%d-%d", spaceIndex, componentIndex)
}
