// Package attributes has types for the attribute facilities of the
// Tessera platform: free-form metadata attached to workspaces and entities.
//
// Attribute values are dynamic JSON. Scalar values come as-is; list values
// come wrapped as {"itemsType": ..., "items": [...]} where itemsType is
// "AttributeValue" for plain lists and "EntityReference" for lists of
// references to other entities.
package attributes

import "fmt"

// operation names understood by the updateAttributes endpoints.
const (
	OpAddUpdate        = "AddUpdateAttribute"
	OpRemove           = "RemoveAttribute"
	OpAddListMember    = "AddListMember"
	OpRemoveListMember = "RemoveListMember"
	OpCreateValueList  = "CreateAttributeValueList"
	OpCreateRefList    = "CreateAttributeEntityReferenceList"
)

// itemsType markers in list-shaped attribute values.
const (
	ItemsTypeValue           = "AttributeValue"
	ItemsTypeEntityReference = "EntityReference"
)

// Update is one attribute update operation.
type Update struct {
	Op                 string `json:"op"`
	AttributeName      string `json:"attributeName"`
	AddUpdateAttribute any    `json:"addUpdateAttribute,omitempty"`
}

func (u Update) Equal(o Update) bool {
	return u.Op == o.Op &&
		u.AttributeName == o.AttributeName &&
		fmt.Sprint(u.AddUpdateAttribute) == fmt.Sprint(o.AddUpdateAttribute)
}

// Set makes an operation setting (or overwriting) a scalar attribute.
func Set(name string, value any) Update {
	return Update{Op: OpAddUpdate, AttributeName: name, AddUpdateAttribute: value}
}

// Remove makes an operation deleting an attribute.
func Remove(name string) Update {
	return Update{Op: OpRemove, AttributeName: name}
}

// CreateValueList makes an operation creating an empty list attribute.
func CreateValueList(name string) Update {
	return Update{Op: OpCreateValueList, AttributeName: name}
}

// CreateReferenceList makes an operation creating an empty entity-reference
// list attribute.
func CreateReferenceList(name string) Update {
	return Update{Op: OpCreateRefList, AttributeName: name}
}

// AddListMember makes an operation appending value to a list attribute.
func AddListMember(name string, value any) Update {
	return Update{Op: OpAddListMember, AttributeName: name, AddUpdateAttribute: value}
}

// RemoveListMember makes an operation removing value from a list attribute.
func RemoveListMember(name string, value any) Update {
	return Update{Op: OpRemoveListMember, AttributeName: name, AddUpdateAttribute: value}
}

// EntityReference points at an entity, as stored in reference-list attributes.
type EntityReference struct {
	EntityType string `json:"entityType"`
	EntityName string `json:"entityName"`
}

// Flatten renders an attribute value for line-oriented output.
//
// List-shaped values are reduced to their items; entity-reference lists are
// reduced to the referenced entity names.
func Flatten(value any) string {
	if m, ok := value.(map[string]any); ok {
		switch m["itemsType"] {
		case ItemsTypeValue:
			return fmt.Sprint(m["items"])
		case ItemsTypeEntityReference:
			items, _ := m["items"].([]any)
			names := make([]any, 0, len(items))
			for _, item := range items {
				if ref, ok := item.(map[string]any); ok {
					names = append(names, ref["entityName"])
				}
			}
			return fmt.Sprint(names)
		}
		if name, ok := m["entityName"]; ok {
			return fmt.Sprint(name)
		}
	}
	return fmt.Sprint(value)
}

// WalkStrings visits every string found in a (possibly nested) attribute
// value: scalars, list items, map values and nestings thereof.
func WalkStrings(value any, visit func(string)) {
	switch v := value.(type) {
	case string:
		visit(v)
	case []any:
		for _, item := range v {
			WalkStrings(item, visit)
		}
	case map[string]any:
		if v["itemsType"] == ItemsTypeValue {
			WalkStrings(v["items"], visit)
			return
		}
		for _, item := range v {
			WalkStrings(item, visit)
		}
	}
}
