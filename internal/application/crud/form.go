package crud

// FieldView campo listo para renderizar.
type FieldView struct {
	Field
	Label    string
	Value    string
	Required bool
	Options  []Option
}

// BuildFields arma la vista del formulario. En alta, un select sin valor toma la
// primera opción disponible (p. ej. el primer rol).
func BuildFields(fields []Field, values Values, options map[string][]Option, editing bool) []FieldView {
	out := make([]FieldView, 0, len(fields))
	for _, f := range fields {
		fv := FieldView{
			Field:    f,
			Label:    f.Label,
			Value:    values.Get(f.Name),
			Required: f.Required,
			Options:  options[f.Name],
		}
		if editing {
			if f.EditLabel != "" {
				fv.Label = f.EditLabel
			}
			if f.OptionalOnEdit {
				fv.Required = false
			}
			if f.Type == FieldPassword {
				fv.Value = ""
			}
		}
		if f.Type == FieldSelect && fv.Value == "" && !editing && len(fv.Options) > 0 {
			fv.Value = fv.Options[0].Value
		}
		out = append(out, fv)
	}
	return out
}
