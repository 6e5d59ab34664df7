package config

// DefaultNonCountryCodes returns the World Bank codes that denote aggregates
// rather than countries (regional blocs, income brackets, the world total).
// Rows carrying these codes are removed from the GDP and population sources.
func DefaultNonCountryCodes() []string {
	return []string{
		"AFE", "AFW", "ARB", "CEB", "CSS", "EAP", "EAR", "EAS", "ECA", "ECS",
		"EMU", "EUU", "FCS", "HIC", "HPC", "IBD", "IBT", "IDA", "IDB", "IDX",
		"LAC", "LCN", "LDC", "LIC", "LMC", "LMY", "LTE", "MEA", "MIC", "MNA",
		"NAC", "OED", "OSS", "PRE", "PSS", "PST", "SAS", "SSA", "SSF", "SST",
		"TEA", "TEC", "TLA", "TMN", "TSA", "TSS", "UMC", "WLD",
	}
}

// DefaultCountryAliases returns the static mapping from raw uppercase country
// labels to their canonical uppercase form. Keys and values are both already
// uppercase; the map is applied only after uppercasing.
func DefaultCountryAliases() map[string]string {
	return map[string]string{
		"ANTIGUA & BARBUDA":                                "ANTIGUA AND BARBUDA",
		"BAHAMAS, THE":                                     "BAHAMAS",
		"BOSNIA & HERZEGOVINA":                             "BOSNIA AND HERZEGOVINA",
		"BRUNEI DARUSSALAM":                                "BRUNEI (DARUSSALAM)",
		"CAPE VERDE":                                       "CABO VERDE",
		"CHINA (MAINLAND)":                                 "CHINA",
		"CONGO, DEM. REP.":                                 "DEMOCRATIC REPUBLIC OF THE CONGO (FORMERLY ZAIRE)",
		"CONGO, REP.":                                      "CONGO",
		"CZECH REPUBLIC":                                   "CZECHIA",
		"COTE D IVOIRE":                                    "COTE D'IVOIRE",
		"DEMOCRATIC PEOPLE S REPUBLIC OF KOREA":            "NORTH KOREA",
		"EGYPT, ARAB REP.":                                 "EGYPT",
		"FAEROE ISLANDS":                                   "FAROE ISLANDS",
		"FRANCE (INCLUDING MONACO)":                        "FRANCE",
		"GAMBIA, THE":                                      "GAMBIA",
		"GUINEA-BISSAU":                                    "GUINEA BISSAU",
		"HONG KONG SAR, CHINA":                             "HONG KONG",
		"HONG KONG SPECIAL ADMINSTRATIVE REGION OF CHINA":  "HONG KONG",
		"IRAN, ISLAMIC REP.":                               "IRAN",
		"ISLAMIC REPUBLIC OF IRAN":                         "IRAN",
		"ITALY (INCLUDING SAN MARINO)":                     "ITALY",
		"KOREA, DEM. PEOPLE'S REP.":                        "NORTH KOREA",
		"KOREA, REP.":                                      "SOUTH KOREA",
		"KYRGYZ REPUBLIC":                                  "KYRGYZSTAN",
		"LAO PDR":                                          "LAO",
		"LAO PEOPLE S DEMOCRATIC REPUBLIC":                 "LAO",
		"LIBYAN ARAB JAMAHIRIYAH":                          "LIBYA",
		"MACAO SAR, CHINA":                                 "MACAU",
		"MACAU SPECIAL ADMINSTRATIVE REGION OF CHINA":      "MACAU",
		"MICRONESIA, FED. STS.":                            "FEDERATED STATES OF MICRONESIA",
		"MYANMAR (FORMERLY BURMA)":                         "MYANMAR",
		"NORTH MACEDONIA":                                  "MACEDONIA",
		"PLURINATIONAL STATE OF BOLIVIA":                   "BOLIVIA",
		"REPUBLIC OF CAMEROON":                             "CAMEROON",
		"REPUBLIC OF KOREA":                                "SOUTH KOREA",
		"REPUBLIC OF MOLDOVA":                              "MOLDOVA",
		"REPUBLIC OF SOUTH SUDAN":                          "SOUTH SUDAN",
		"SAINT LUCIA":                                      "ST. LUCIA",
		"SAINT MARTIN (DUTCH PORTION)":                     "SINT MAARTEN (DUTCH PART)",
		"SAO TOME & PRINCIPE":                              "SAO TOME AND PRINCIPE",
		"SLOVAK REPUBLIC":                                  "SLOVAKIA",
		"ST. KITTS-NEVIS":                                  "ST. KITTS AND NEVIS",
		"ST. VINCENT & THE GRENADINES":                     "ST. VINCENT AND THE GRENADINES",
		"TIMOR-LESTE (FORMERLY EAST TIMOR)":                "TIMOR-LESTE",
		"TURKIYE":                                          "TURKEY",
		"UNITED REPUBLIC OF TANZANIA":                      "TANZANIA",
		"UNITED STATES":                                    "UNITED STATES OF AMERICA",
		"WEST BANK AND GAZA":                               "OCCUPIED PALESTINIAN TERRITORY",
		"VIET NAM":                                         "VIETNAM",
		"VENEZUELA, RB":                                    "VENEZUELA",
		"YEMEN, REP.":                                      "YEMEN",
	}
}
