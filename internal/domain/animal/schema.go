// Package animal extracts a fixed, fully populated description of the
// animal in an image from the vision model's free-form JSON reply.
package animal

// Placeholders substituted for leaves the model left out or filled badly.
// The form follows the grammatical gender and number of each field.
const (
	Unknown          = "Desconocido"
	UnknownFeminine  = "Desconocida"
	UnknownPlural    = "Desconocidos"
	UnknownFemPlural = "Desconocidas"
)

// Record is the normalized analysis of one image. Every leaf is always set.
type Record struct {
	CommonName     string         `json:"nombre_comun"`
	ScientificName string         `json:"nombre_cientifico"`
	Classification Classification `json:"clasificacion"`
	Habitat        Habitat        `json:"habitat"`
	Diet           Diet           `json:"dieta"`
	Physical       Physical       `json:"caracteristicas_fisicas"`
	Conservation   Conservation   `json:"estado_conservacion"`
}

type Classification struct {
	Class  string `json:"clase"`
	Order  string `json:"orden"`
	Family string `json:"familia"`
}

type Habitat struct {
	Types   []string `json:"tipos"`
	Region  []string `json:"region"`
	Climate []string `json:"clima"`
}

type Diet struct {
	Type      string   `json:"tipo"`
	MainFoods []string `json:"alimentos_principales"`
}

type Physical struct {
	Size              Size     `json:"tamaño"`
	DominantColors    []string `json:"colores_dominantes"`
	DistinctiveTraits []string `json:"rasgos_distintivos"`
}

type Size struct {
	AvgHeightCM string `json:"altura_promedio_cm"`
	AvgWeightKG string `json:"peso_promedio_kg"`
}

type Conservation struct {
	IUCNStatus  string   `json:"clasificacion_IUCN"`
	MainThreats []string `json:"amenazas_principales"`
}

type kind int

const (
	scalar kind = iota
	list
)

// leaf maps one dotted path of the reply to a Record field.
// Exactly one of str and strs is set, matching kind.
type leaf struct {
	path        string
	kind        kind
	placeholder string
	str         func(*Record) *string
	strs        func(*Record) *[]string
}

// schema lists every leaf of Record in output order.
var schema = []leaf{
	{path: "nombre_comun", kind: scalar, placeholder: Unknown,
		str: func(r *Record) *string { return &r.CommonName }},
	{path: "nombre_cientifico", kind: scalar, placeholder: Unknown,
		str: func(r *Record) *string { return &r.ScientificName }},

	{path: "clasificacion.clase", kind: scalar, placeholder: UnknownFeminine,
		str: func(r *Record) *string { return &r.Classification.Class }},
	{path: "clasificacion.orden", kind: scalar, placeholder: Unknown,
		str: func(r *Record) *string { return &r.Classification.Order }},
	{path: "clasificacion.familia", kind: scalar, placeholder: UnknownFeminine,
		str: func(r *Record) *string { return &r.Classification.Family }},

	{path: "habitat.tipos", kind: list, placeholder: Unknown,
		strs: func(r *Record) *[]string { return &r.Habitat.Types }},
	{path: "habitat.region", kind: list, placeholder: UnknownFeminine,
		strs: func(r *Record) *[]string { return &r.Habitat.Region }},
	{path: "habitat.clima", kind: list, placeholder: Unknown,
		strs: func(r *Record) *[]string { return &r.Habitat.Climate }},

	{path: "dieta.tipo", kind: scalar, placeholder: Unknown,
		str: func(r *Record) *string { return &r.Diet.Type }},
	{path: "dieta.alimentos_principales", kind: list, placeholder: UnknownPlural,
		strs: func(r *Record) *[]string { return &r.Diet.MainFoods }},

	{path: "caracteristicas_fisicas.tamaño.altura_promedio_cm", kind: scalar, placeholder: UnknownFeminine,
		str: func(r *Record) *string { return &r.Physical.Size.AvgHeightCM }},
	{path: "caracteristicas_fisicas.tamaño.peso_promedio_kg", kind: scalar, placeholder: Unknown,
		str: func(r *Record) *string { return &r.Physical.Size.AvgWeightKG }},
	{path: "caracteristicas_fisicas.colores_dominantes", kind: list, placeholder: UnknownPlural,
		strs: func(r *Record) *[]string { return &r.Physical.DominantColors }},
	{path: "caracteristicas_fisicas.rasgos_distintivos", kind: list, placeholder: UnknownPlural,
		strs: func(r *Record) *[]string { return &r.Physical.DistinctiveTraits }},

	{path: "estado_conservacion.clasificacion_IUCN", kind: scalar, placeholder: UnknownFeminine,
		str: func(r *Record) *string { return &r.Conservation.IUCNStatus }},
	{path: "estado_conservacion.amenazas_principales", kind: list, placeholder: UnknownFemPlural,
		strs: func(r *Record) *[]string { return &r.Conservation.MainThreats }},
}

// Defaults returns a Record with every leaf set to its placeholder.
func Defaults() Record {
	return fill(nil)
}
