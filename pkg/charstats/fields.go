package charstats

// Field names a character attribute.
type Field string

const (
	FieldName        Field = "name"
	FieldHP          Field = "hp"
	FieldAttack      Field = "attack"
	FieldDefense     Field = "defense"
	FieldSpeed       Field = "speed"
	FieldMagic       Field = "magic"
	FieldLuck        Field = "luck"
	FieldDescription Field = "description"
)

// Spec describes one numeric attribute: its display label and inclusive bounds.
type Spec struct {
	Field Field
	Label string
	Min   int
	Max   int
}

// numericSpecs is the static field table. Order matches the collection order
// of the conversation flow.
var numericSpecs = []Spec{
	{Field: FieldHP, Label: "HP", Min: 10, Max: 200},
	{Field: FieldAttack, Label: "攻撃力", Min: 10, Max: 150},
	{Field: FieldDefense, Label: "防御力", Min: 10, Max: 100},
	{Field: FieldSpeed, Label: "素早さ", Min: 10, Max: 100},
	{Field: FieldMagic, Label: "魔力", Min: 10, Max: 100},
	{Field: FieldLuck, Label: "運", Min: 0, Max: 100},
}

// MaxStatTotal is the budget: the six numeric attributes may sum to at most this.
const MaxStatTotal = 350

// MaxNameRunes caps the character name length.
const MaxNameRunes = 30

// NumericSpecs returns the static numeric field table in collection order.
func NumericSpecs() []Spec {
	out := make([]Spec, len(numericSpecs))
	copy(out, numericSpecs)
	return out
}

// SpecFor looks up the Spec for a numeric field.
func SpecFor(f Field) (Spec, bool) {
	for _, s := range numericSpecs {
		if s.Field == f {
			return s, true
		}
	}
	return Spec{}, false
}
