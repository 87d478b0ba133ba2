package domain

import "time"

// Selection is the explicit, immutable state of the five cascading filter
// stages. The zero value selects everything: empty stage values are treated
// as "All", and a zero From/To falls back to the default period computed
// from the upstream-narrowed set.
type Selection struct {
	Specie  string    `json:"specie"`
	Farm    string    `json:"farm"`
	Disease string    `json:"disease"`
	Result  string    `json:"result"`
	From    time.Time `json:"from"`
	To      time.Time `json:"to"`
}

// IsAll reports whether the given stage value performs no narrowing.
func IsAll(v string) bool {
	return v == "" || v == FilterAll
}

// Resolution is the output of one cascading-filter pass: the narrowed
// candidate set plus the option universe each stage may legally offer.
// Option lists are computed from the set narrowed by all *earlier* stages
// only, never from the full base set.
type Resolution struct {
	Candidates     []TestRecord `json:"-"`
	SpecieOptions  []string     `json:"specie_options"`
	FarmOptions    []string     `json:"farm_options"`
	DiseaseOptions []string     `json:"disease_options"`
	ResultOptions  []string     `json:"result_options"`

	// Default period bounds: min/max test date of the set narrowed by
	// every stage except the period itself. Zero when that set is empty.
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
}
