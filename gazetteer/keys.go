package gazetteer

import (
	"github.com/morikuni/failure/v2"
	"github.com/samber/lo"
)

// Dataset identifies one of the bundled place tables
type Dataset string

const (
	DatasetNorway    Dataset = "norway"
	DatasetNorwayZip Dataset = "zip"
	DatasetWorld     Dataset = "world"
)

// String returns the string representation of the Dataset
func (d Dataset) String() string {
	return string(d)
}

// Datasets returns every known dataset in display order
func Datasets() []Dataset {
	return []Dataset{DatasetNorway, DatasetNorwayZip, DatasetWorld}
}

// Language selects which name columns of a dataset are used
type Language string

const (
	LanguageEnglish Language = "english"
	LanguageBokmaal Language = "bokmaal"
	LanguageNynorsk Language = "nynorsk"
)

// String returns the string representation of the Language
func (l Language) String() string {
	return string(l)
}

// Languages returns every known language in display order
func Languages() []Language {
	return []Language{LanguageEnglish, LanguageBokmaal, LanguageNynorsk}
}

// Logical field names used in projected records
const (
	FieldState   = "state"
	FieldZip     = "zip"
	FieldCountry = "country"
	FieldXMLURL  = "xml-url"
)

// Key maps a logical field name to a column in the source file
type Key struct {
	Name   string
	Column string
}

// KeySet is an ordered projection of source columns.
// The last key is always the feed link and is never searched.
type KeySet []Key

// Names returns the logical field names in order
func (ks KeySet) Names() []string {
	return lo.Map(ks, func(k Key, _ int) string { return k.Name })
}

// Columns returns the source column names in order
func (ks KeySet) Columns() []string {
	return lo.Map(ks, func(k Key, _ int) string { return k.Column })
}

// SearchFields returns the logical names that take part in matching
func (ks KeySet) SearchFields() []string {
	if len(ks) == 0 {
		return nil
	}
	return ks[:len(ks)-1].Names()
}

// keySets is indexed by dataset, then language
var keySets = map[Dataset]map[Language]KeySet{
	DatasetNorway: {
		LanguageEnglish: {{FieldState, "Stadnamn"}, {FieldXMLURL, "Engelsk"}},
		LanguageBokmaal: {{FieldState, "Stadnamn"}, {FieldXMLURL, "Bokmål"}},
		LanguageNynorsk: {{FieldState, "Stadnamn"}, {FieldXMLURL, "Nynorsk"}},
	},
	DatasetNorwayZip: {
		LanguageEnglish: {{FieldZip, "Postnr"}, {FieldXMLURL, "Engelsk"}},
		LanguageBokmaal: {{FieldZip, "Postnr"}, {FieldXMLURL, "Bokmål"}},
		LanguageNynorsk: {{FieldZip, "Postnr"}, {FieldXMLURL, "Nynorsk"}},
	},
	DatasetWorld: {
		LanguageEnglish: {
			{FieldState, "Stadnamn engelsk"},
			{FieldCountry, "Landsnamn engelsk"},
			{FieldXMLURL, "Lenke til engelsk-XML"},
		},
		LanguageBokmaal: {
			{FieldState, "Stadnamn bokmål"},
			{FieldCountry, "Landsnamn bokmål"},
			{FieldXMLURL, "Lenke til bokmåls-XML"},
		},
		LanguageNynorsk: {
			{FieldState, "Stadnamn nynorsk"},
			{FieldCountry, "Landsnamn nynorsk"},
			{FieldXMLURL, "Lenke til nynorsk-XML"},
		},
	},
}

// SelectKeys returns the projection for the given dataset and language
func SelectKeys(dataset Dataset, language Language) (KeySet, error) {
	byLanguage, ok := keySets[dataset]
	if !ok {
		return nil, failure.New(ErrUnknownDataset,
			failure.Message("Unknown search scope"),
			failure.Context{"dataset": dataset.String()},
		)
	}
	keys, ok := byLanguage[language]
	if !ok {
		return nil, failure.New(ErrUnknownDataset,
			failure.Message("Unknown language"),
			failure.Context{"dataset": dataset.String(), "language": language.String()},
		)
	}
	// keySets is shared, hand out a copy
	return append(KeySet(nil), keys...), nil
}
