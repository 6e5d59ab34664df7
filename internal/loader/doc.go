// Package loader reads the three raw sources from disk into tables.
//
// Emissions arrive as a long CSV with Year, Country and Total columns. GDP
// and population arrive in the World Bank layout (CSV or XLSX): three
// metadata preamble rows, then a header of Country Name, Country Code,
// Indicator Name, Indicator Code followed by one column per calendar year.
// The loader strips the preamble, drops Indicator Code and the trailing
// empty metadata column, and renames Country Name to Country, so the tables
// it hands to the pipeline are already in the shape the core expects.
//
// Missing year cells are loaded as NaN; the pipeline discards those rows
// after reshaping.
package loader
