package models

// FieldType is the declared target type of a clean record field.
type FieldType string

// Supported field types.
const (
	FieldInt    FieldType = "int"
	FieldFloat  FieldType = "float"
	FieldString FieldType = "string"
	FieldBool   FieldType = "bool"
)

// Field names with special handling.
const (
	FieldGameID        = "game_id"
	FieldOriginalPrice = "original_price"
	FieldFinalPrice    = "final_price"
)

// FieldSpec declares one field of the clean record schema.
type FieldSpec struct {
	Name     string
	Type     FieldType
	Required bool
}

// FieldSchema is an ordered set of field declarations.
type FieldSchema []FieldSpec

// Names returns the field names in declaration order.
func (s FieldSchema) Names() []string {
	names := make([]string, 0, len(s))
	for _, f := range s {
		names = append(names, f.Name)
	}

	return names
}

// FeaturedGameSchema is the schema of a clean featured-game record.
var FeaturedGameSchema = FieldSchema{
	{Name: FieldGameID, Type: FieldInt, Required: true},
	{Name: "type", Type: FieldInt, Required: true},
	{Name: "name", Type: FieldString, Required: true},
	{Name: "discounted", Type: FieldBool},
	{Name: "discount_percent", Type: FieldInt},
	{Name: FieldOriginalPrice, Type: FieldFloat},
	{Name: FieldFinalPrice, Type: FieldFloat},
	{Name: "currency", Type: FieldString},
	{Name: "discount_expiration", Type: FieldInt},
	{Name: "large_capsule_image", Type: FieldString},
	{Name: "small_capsule_image", Type: FieldString},
	{Name: "header_image", Type: FieldString},
	{Name: "windows_available", Type: FieldBool},
	{Name: "mac_available", Type: FieldBool},
	{Name: "linux_available", Type: FieldBool},
	{Name: "streamingvideo_available", Type: FieldBool},
	{Name: "controller_support", Type: FieldString},
	{Name: "source", Type: FieldString},
	{Name: "endpoint", Type: FieldString},
	{Name: "category", Type: FieldString},
	{Name: "captured_at", Type: FieldString},
	{Name: "normalized_at", Type: FieldString},
}
