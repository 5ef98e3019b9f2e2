package quotations

import (
	"context"
	"fmt"
	"testing"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/db/models"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupQuotationsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	quotations := `
CREATE TABLE IF NOT EXISTS quotations (
  id TEXT PRIMARY KEY,
  studio_id TEXT NOT NULL,
  lead_id TEXT,
  quotation_number TEXT NOT NULL,
  version INTEGER NOT NULL DEFAULT 1,
  title TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'draft',
  subtotal NUMERIC NOT NULL DEFAULT 0,
  discount_percent NUMERIC NOT NULL DEFAULT 0,
  discount_amount NUMERIC NOT NULL DEFAULT 0,
  tax_percent NUMERIC NOT NULL DEFAULT 0,
  tax_amount NUMERIC NOT NULL DEFAULT 0,
  overhead_percent NUMERIC NOT NULL DEFAULT 0,
  overhead_amount NUMERIC NOT NULL DEFAULT 0,
  grand_total NUMERIC NOT NULL DEFAULT 0,
  valid_until DATETIME,
  terms TEXT,
  show_unit_prices INTEGER NOT NULL DEFAULT 1,
  assigned_to TEXT,
  created_by TEXT NOT NULL,
  updated_by TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	spaces := `
CREATE TABLE IF NOT EXISTS quotation_spaces (
  id TEXT PRIMARY KEY,
  quotation_id TEXT NOT NULL,
  name TEXT NOT NULL,
  space_type_id TEXT,
  subtotal NUMERIC NOT NULL DEFAULT 0,
  display_order INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`
	components := `
CREATE TABLE IF NOT EXISTS quotation_components (
  id TEXT PRIMARY KEY,
  quotation_id TEXT NOT NULL,
  space_id TEXT REFERENCES quotation_spaces(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  component_type_id TEXT,
  component_variant_id TEXT,
  subtotal NUMERIC NOT NULL DEFAULT 0,
  display_order INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`
	lineItems := `
CREATE TABLE IF NOT EXISTS quotation_line_items (
  id TEXT PRIMARY KEY,
  quotation_id TEXT NOT NULL,
  quotation_space_id TEXT,
  quotation_component_id TEXT,
  cost_item_id TEXT,
  description TEXT NOT NULL,
  quantity NUMERIC NOT NULL DEFAULT 0,
  rate NUMERIC NOT NULL DEFAULT 0,
  amount NUMERIC NOT NULL DEFAULT 0,
  measurement_unit TEXT,
  display_order INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(quotations).Error)
	require.NoError(t, db.Exec(spaces).Error)
	require.NoError(t, db.Exec(components).Error)
	require.NoError(t, db.Exec(lineItems).Error)
	return db
}

func newQuotation(t *testing.T, db *gorm.DB, studioID uuid.UUID, number string, version int) *models.Quotation {
	t.Helper()

	quotation := &models.Quotation{
		ID:              uuid.New(),
		StudioID:        studioID,
		QuotationNumber: number,
		Version:         version,
		Title:           "Apartment fit-out",
		Status:          enums.QuotationStatusDraft,
		CreatedBy:       uuid.New(),
	}
	require.NoError(t, db.Create(quotation).Error)
	return quotation
}

func itemInput(description string, amount int64) LineItemInput {
	return LineItemInput{
		Description: description,
		Quantity:    decimal.NewFromInt(1),
		Rate:        decimal.NewFromInt(amount),
		Amount:      decimal.NewFromInt(amount),
	}
}

func TestRepositoryReplaceTree_insertsHierarchy(t *testing.T) {
	db := setupQuotationsTestDB(t)
	repo := NewRepository(db)
	quotation := newQuotation(t, db, uuid.New(), "QT-0001", 1)

	input := []SpaceInput{
		{
			Name: "Living Room",
			Components: []ComponentInput{
				{Name: "TV Unit", LineItems: []LineItemInput{itemInput("Plywood", 1200), itemInput("Laminate", 400)}},
			},
			LineItems: []LineItemInput{itemInput("False ceiling", 2500)},
		},
		{
			Name: "Bedroom",
			Components: []ComponentInput{
				{Name: "Wardrobe", LineItems: []LineItemInput{itemInput("Shutters", 3000)}},
			},
		},
	}
	require.NoError(t, repo.ReplaceTree(db, quotation.ID, input))

	ctx := context.Background()
	spaces, err := repo.SpacesFor(ctx, quotation.ID)
	require.NoError(t, err)
	require.Len(t, spaces, 2)
	assert.Equal(t, "Living Room", spaces[0].Name)
	assert.Equal(t, 0, spaces[0].DisplayOrder)
	assert.Equal(t, "Bedroom", spaces[1].Name)
	assert.Equal(t, 1, spaces[1].DisplayOrder)

	components, err := repo.ComponentsFor(ctx, quotation.ID)
	require.NoError(t, err)
	require.Len(t, components, 2)
	require.NotNil(t, components[0].SpaceID)
	assert.Equal(t, spaces[0].ID, *components[0].SpaceID)
	require.NotNil(t, components[1].SpaceID)
	assert.Equal(t, spaces[1].ID, *components[1].SpaceID)

	items, err := repo.LineItemsFor(ctx, quotation.ID)
	require.NoError(t, err)
	require.Len(t, items, 4)
}

func TestRepositoryReplaceTree_globalDisplayOrder(t *testing.T) {
	db := setupQuotationsTestDB(t)
	repo := NewRepository(db)
	quotation := newQuotation(t, db, uuid.New(), "QT-0002", 1)

	// Two spaces, one item each: the counter keeps climbing across
	// spaces instead of restarting.
	input := []SpaceInput{
		{Name: "Kitchen", Components: []ComponentInput{{Name: "Cabinets", LineItems: []LineItemInput{itemInput("Carcass", 900)}}}},
		{Name: "Balcony", Components: []ComponentInput{{Name: "Deck", LineItems: []LineItemInput{itemInput("Flooring", 700)}}}},
	}
	require.NoError(t, repo.ReplaceTree(db, quotation.ID, input))

	items, err := repo.LineItemsFor(context.Background(), quotation.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 0, items[0].DisplayOrder)
	assert.Equal(t, "Carcass", items[0].Description)
	assert.Equal(t, 1, items[1].DisplayOrder)
	assert.Equal(t, "Flooring", items[1].Description)
}

func TestRepositoryReplaceTree_replacesOldSubtree(t *testing.T) {
	db := setupQuotationsTestDB(t)
	repo := NewRepository(db)
	quotation := newQuotation(t, db, uuid.New(), "QT-0003", 1)

	first := []SpaceInput{
		{Name: "Old Space", Components: []ComponentInput{{Name: "Old Component", LineItems: []LineItemInput{itemInput("Old item", 100)}}}},
	}
	require.NoError(t, repo.ReplaceTree(db, quotation.ID, first))

	second := []SpaceInput{
		{Name: "New Space", Components: []ComponentInput{{Name: "New Component", LineItems: []LineItemInput{itemInput("New item", 200)}}}},
	}
	require.NoError(t, repo.ReplaceTree(db, quotation.ID, second))

	ctx := context.Background()
	spaces, err := repo.SpacesFor(ctx, quotation.ID)
	require.NoError(t, err)
	require.Len(t, spaces, 1)
	assert.Equal(t, "New Space", spaces[0].Name)

	// Old components went with the space cascade, not an explicit delete.
	components, err := repo.ComponentsFor(ctx, quotation.ID)
	require.NoError(t, err)
	require.Len(t, components, 1)
	assert.Equal(t, "New Component", components[0].Name)
	require.NotNil(t, components[0].SpaceID)
	assert.Equal(t, spaces[0].ID, *components[0].SpaceID)

	items, err := repo.LineItemsFor(ctx, quotation.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "New item", items[0].Description)
}

func TestRepositoryReplaceTree_roundTripShape(t *testing.T) {
	db := setupQuotationsTestDB(t)
	repo := NewRepository(db)
	quotation := newQuotation(t, db, uuid.New(), "QT-0004", 1)

	input := []SpaceInput{
		{
			Name: "Master Bedroom",
			Components: []ComponentInput{
				{Name: "Wardrobe", LineItems: []LineItemInput{itemInput("Shutters", 3000), itemInput("Hardware", 450)}},
				{Name: "Bed Back Panel", LineItems: []LineItemInput{itemInput("Veneer", 800)}},
			},
			LineItems: []LineItemInput{itemInput("Painting", 1500)},
		},
		{
			Name:      "Foyer",
			LineItems: []LineItemInput{itemInput("Console", 600)},
		},
	}
	require.NoError(t, repo.ReplaceTree(db, quotation.ID, input))

	ctx := context.Background()
	spaces, err := repo.SpacesFor(ctx, quotation.ID)
	require.NoError(t, err)
	components, err := repo.ComponentsFor(ctx, quotation.ID)
	require.NoError(t, err)
	items, err := repo.LineItemsFor(ctx, quotation.ID)
	require.NoError(t, err)

	tree := BuildTree(spaces, components, items)

	require.Len(t, tree.Spaces, 2)
	assert.Empty(t, tree.OrphanComponents)
	assert.Empty(t, tree.OrphanLineItems)

	master := tree.Spaces[0]
	assert.Equal(t, "Master Bedroom", master.Name)
	require.Len(t, master.Components, 2)
	assert.Equal(t, "Wardrobe", master.Components[0].Name)
	assert.Len(t, master.Components[0].LineItems, 2)
	assert.Equal(t, "Bed Back Panel", master.Components[1].Name)
	assert.Len(t, master.Components[1].LineItems, 1)
	require.Len(t, master.LineItems, 1)
	assert.Equal(t, "Painting", master.LineItems[0].Description)

	foyer := tree.Spaces[1]
	assert.Equal(t, "Foyer", foyer.Name)
	assert.Empty(t, foyer.Components)
	require.Len(t, foyer.LineItems, 1)
	assert.Equal(t, "Console", foyer.LineItems[0].Description)
}

func TestRepositoryReplaceLineItems_keepsSpacesAndReferences(t *testing.T) {
	db := setupQuotationsTestDB(t)
	repo := NewRepository(db)
	quotation := newQuotation(t, db, uuid.New(), "QT-0005", 1)

	require.NoError(t, repo.ReplaceTree(db, quotation.ID, []SpaceInput{
		{Name: "Study", Components: []ComponentInput{{Name: "Desk", LineItems: []LineItemInput{itemInput("Top", 500)}}}},
	}))

	ctx := context.Background()
	spaces, err := repo.SpacesFor(ctx, quotation.ID)
	require.NoError(t, err)
	components, err := repo.ComponentsFor(ctx, quotation.ID)
	require.NoError(t, err)

	// Flat shape: whatever references the caller supplies are stored
	// verbatim, including ones pointing at nothing.
	dangling := uuid.New()
	flat := []LineItemInput{
		func() LineItemInput {
			in := itemInput("Repriced top", 550)
			in.QuotationSpaceID = &spaces[0].ID
			in.QuotationComponentID = &components[0].ID
			return in
		}(),
		func() LineItemInput {
			in := itemInput("Floating item", 75)
			in.QuotationComponentID = &dangling
			return in
		}(),
	}
	require.NoError(t, repo.ReplaceLineItems(db, quotation.ID, flat))

	spacesAfter, err := repo.SpacesFor(ctx, quotation.ID)
	require.NoError(t, err)
	assert.Len(t, spacesAfter, 1)
	componentsAfter, err := repo.ComponentsFor(ctx, quotation.ID)
	require.NoError(t, err)
	assert.Len(t, componentsAfter, 1)

	items, err := repo.LineItemsFor(ctx, quotation.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Repriced top", items[0].Description)
	require.NotNil(t, items[0].QuotationComponentID)
	assert.Equal(t, components[0].ID, *items[0].QuotationComponentID)
	require.NotNil(t, items[1].QuotationComponentID)
	assert.Equal(t, dangling, *items[1].QuotationComponentID)
}

func TestRepositoryCopySubtree(t *testing.T) {
	db := setupQuotationsTestDB(t)
	repo := NewRepository(db)
	studioID := uuid.New()
	source := newQuotation(t, db, studioID, "QT-0006", 1)
	target := newQuotation(t, db, studioID, "QT-0006", 2)

	require.NoError(t, repo.ReplaceTree(db, source.ID, []SpaceInput{
		{Name: "Hall", Components: []ComponentInput{{Name: "Partition", LineItems: []LineItemInput{itemInput("Glass", 2200)}}}},
	}))
	require.NoError(t, repo.CopySubtree(db, source.ID, target.ID))

	ctx := context.Background()
	sourceSpaces, err := repo.SpacesFor(ctx, source.ID)
	require.NoError(t, err)
	targetSpaces, err := repo.SpacesFor(ctx, target.ID)
	require.NoError(t, err)
	require.Len(t, targetSpaces, 1)
	assert.NotEqual(t, sourceSpaces[0].ID, targetSpaces[0].ID)
	assert.Equal(t, sourceSpaces[0].Name, targetSpaces[0].Name)

	targetComponents, err := repo.ComponentsFor(ctx, target.ID)
	require.NoError(t, err)
	require.Len(t, targetComponents, 1)
	require.NotNil(t, targetComponents[0].SpaceID)
	assert.Equal(t, targetSpaces[0].ID, *targetComponents[0].SpaceID)

	targetItems, err := repo.LineItemsFor(ctx, target.ID)
	require.NoError(t, err)
	require.Len(t, targetItems, 1)
	require.NotNil(t, targetItems[0].QuotationComponentID)
	assert.Equal(t, targetComponents[0].ID, *targetItems[0].QuotationComponentID)

	// Source is untouched.
	sourceItems, err := repo.LineItemsFor(ctx, source.ID)
	require.NoError(t, err)
	assert.Len(t, sourceItems, 1)
}

func TestRepositoryVersionsAndMaxVersion(t *testing.T) {
	db := setupQuotationsTestDB(t)
	repo := NewRepository(db)
	studioID := uuid.New()

	newQuotation(t, db, studioID, "QT-0007", 1)
	newQuotation(t, db, studioID, "QT-0007", 2)
	newQuotation(t, db, studioID, "QT-0008", 1)
	newQuotation(t, db, uuid.New(), "QT-0007", 9)

	ctx := context.Background()
	versions, err := repo.Versions(ctx, studioID, "QT-0007")
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, 1, versions[0].Version)
	assert.Equal(t, 2, versions[1].Version)

	max, err := repo.MaxVersion(ctx, studioID, "QT-0007")
	require.NoError(t, err)
	assert.Equal(t, 2, max)

	none, err := repo.MaxVersion(ctx, studioID, "QT-9999")
	require.NoError(t, err)
	assert.Equal(t, 0, none)
}
