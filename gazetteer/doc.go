// Package gazetteer loads the bundled place-name tables.
//
// Three datasets are shipped with the binary: Norwegian place names,
// Norwegian postal codes and world cities. Each row carries the name
// columns in English, Bokmål and Nynorsk plus a link to the forecast
// feed for the place. A KeySet selects which columns are projected
// into a Record and which of them are searchable.
package gazetteer
