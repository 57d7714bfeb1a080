package entity

// ItemCorrection corrección parcial de un ítem hecha en la revisión humana.
// Campos nil no se modifican; una corrección vacía confirma el ítem tal como está.
type ItemCorrection struct {
	Description  *string
	NCMCode      *string
	IsMonofasico *bool
}
