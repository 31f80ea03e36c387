package redcap

// apiField represents one row of the REDCap "metadata" export
// (content=metadata, format=json). Only the columns used by the
// migration are decoded.
type apiField struct {
	FieldName       string `json:"field_name"`
	FormName        string `json:"form_name"`
	FieldType       string `json:"field_type"`
	FieldAnnotation string `json:"field_annotation"`
}

// apiError is the body REDCap returns for rejected API calls.
type apiError struct {
	Error string `json:"error"`
}
