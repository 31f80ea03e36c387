package provider

// MetadataField is one field of a REDCap project's data dictionary, reduced
// to the attributes the migration needs.
type MetadataField struct {
	FieldName  string
	FormName   string
	FieldType  string
	Annotation string
}
