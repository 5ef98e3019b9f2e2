package quotations

import (
	"github.com/fitdesk-hq/fitdesk-backend/pkg/db/models"
	"github.com/google/uuid"
)

// BuildTree reassembles the three flat, display_order-sorted collections of
// one quotation into the nested space -> component -> line item hierarchy.
//
// Attachment rules, in precedence order for each line item:
//  1. a resolvable component reference that is nested under a space
//  2. a component reference known in the flat lookup (headless component)
//  3. a resolvable direct space reference
//  4. otherwise the item lands in OrphanLineItems
//
// OrphanComponents holds every component without a space reference.
// A component whose space_id is set but matches no fetched space ends up in
// neither the tree nor the orphan list; items resolved onto such a component
// vanish with it. That mirrors the long-standing production behavior and is
// deliberately not corrected here (see DESIGN.md).
//
// Pure and synchronous: no I/O, no error paths; malformed references degrade
// to orphan placement.
func BuildTree(spaces []models.QuotationSpace, components []models.QuotationComponent, lineItems []models.QuotationLineItem) Tree {
	spaceNodes := make([]*SpaceNode, 0, len(spaces))
	spacesByID := make(map[uuid.UUID]*SpaceNode, len(spaces))
	for _, space := range spaces {
		node := &SpaceNode{
			QuotationSpace: space,
			Components:     []*ComponentNode{},
			LineItems:      []models.QuotationLineItem{},
		}
		spaceNodes = append(spaceNodes, node)
		spacesByID[space.ID] = node
	}

	componentNodes := make([]*ComponentNode, 0, len(components))
	componentsByID := make(map[uuid.UUID]*ComponentNode, len(components))
	for _, component := range components {
		node := &ComponentNode{
			QuotationComponent: component,
			LineItems:          []models.QuotationLineItem{},
		}
		componentNodes = append(componentNodes, node)
		componentsByID[component.ID] = node

		if component.SpaceID != nil {
			if parent, ok := spacesByID[*component.SpaceID]; ok {
				parent.Components = append(parent.Components, node)
			}
		}
	}

	orphanLineItems := []models.QuotationLineItem{}
	for _, item := range lineItems {
		if item.QuotationComponentID != nil {
			if attached := findAttachedComponent(spaceNodes, *item.QuotationComponentID); attached != nil {
				attached.LineItems = append(attached.LineItems, item)
				continue
			}
			if headless, ok := componentsByID[*item.QuotationComponentID]; ok {
				headless.LineItems = append(headless.LineItems, item)
				continue
			}
		}
		if item.QuotationSpaceID != nil {
			if space, ok := spacesByID[*item.QuotationSpaceID]; ok {
				space.LineItems = append(space.LineItems, item)
				continue
			}
		}
		orphanLineItems = append(orphanLineItems, item)
	}

	orphanComponents := []*ComponentNode{}
	for _, node := range componentNodes {
		if node.SpaceID == nil {
			orphanComponents = append(orphanComponents, node)
		}
	}

	return Tree{
		Spaces:           spaceNodes,
		OrphanComponents: orphanComponents,
		OrphanLineItems:  orphanLineItems,
	}
}

// findAttachedComponent scans spaces in input order and each space's
// components in attachment order; component ids are unique so the first
// match is the only match.
func findAttachedComponent(spaces []*SpaceNode, componentID uuid.UUID) *ComponentNode {
	for _, space := range spaces {
		for _, component := range space.Components {
			if component.ID == componentID {
				return component
			}
		}
	}
	return nil
}
