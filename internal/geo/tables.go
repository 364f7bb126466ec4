package geo

// countryAliases maps lower-cased country names and common aliases to
// ISO 3166-1 alpha-2 codes. "georgia" is deliberately absent; see usStates.
var countryAliases = map[string]string{
	"afghanistan": "AF", "albania": "AL", "algeria": "DZ", "andorra": "AD",
	"angola": "AO", "argentina": "AR", "armenia": "AM", "australia": "AU",
	"austria": "AT", "azerbaijan": "AZ", "bahamas": "BS", "bahrain": "BH",
	"bangladesh": "BD", "barbados": "BB", "belarus": "BY", "belgium": "BE",
	"belize": "BZ", "benin": "BJ", "bhutan": "BT", "bolivia": "BO",
	"bosnia and herzegovina": "BA", "bosnia": "BA", "botswana": "BW",
	"brazil": "BR", "brasil": "BR", "brunei": "BN", "bulgaria": "BG",
	"burkina faso": "BF", "burundi": "BI", "cambodia": "KH", "cameroon": "CM",
	"canada": "CA", "cape verde": "CV", "chad": "TD", "chile": "CL",
	"china": "CN", "prc": "CN", "colombia": "CO", "congo": "CG",
	"democratic republic of the congo": "CD", "drc": "CD", "costa rica": "CR",
	"croatia": "HR", "cuba": "CU", "cyprus": "CY", "czech republic": "CZ",
	"czechia": "CZ", "denmark": "DK", "djibouti": "DJ",
	"dominican republic": "DO", "ecuador": "EC", "egypt": "EG",
	"el salvador": "SV", "estonia": "EE", "eswatini": "SZ", "ethiopia": "ET",
	"fiji": "FJ", "finland": "FI", "france": "FR", "gabon": "GA",
	"gambia": "GM", "germany": "DE", "deutschland": "DE", "ghana": "GH",
	"greece": "GR", "guatemala": "GT", "guinea": "GN", "guyana": "GY",
	"haiti": "HT", "honduras": "HN", "hong kong": "HK", "hungary": "HU",
	"iceland": "IS", "india": "IN", "indonesia": "ID", "iran": "IR",
	"iraq": "IQ", "ireland": "IE", "israel": "IL", "italy": "IT",
	"italia": "IT", "ivory coast": "CI", "cote d'ivoire": "CI",
	"jamaica": "JM", "japan": "JP", "jordan": "JO", "kazakhstan": "KZ",
	"kenya": "KE", "kosovo": "XK", "kuwait": "KW", "kyrgyzstan": "KG",
	"laos": "LA", "latvia": "LV", "lebanon": "LB", "liberia": "LR",
	"libya": "LY", "liechtenstein": "LI", "lithuania": "LT",
	"luxembourg": "LU", "macau": "MO", "madagascar": "MG", "malawi": "MW",
	"malaysia": "MY", "maldives": "MV", "mali": "ML", "malta": "MT",
	"mauritania": "MR", "mauritius": "MU", "mexico": "MX", "méxico": "MX",
	"moldova": "MD", "monaco": "MC", "mongolia": "MN", "montenegro": "ME",
	"morocco": "MA", "mozambique": "MZ", "myanmar": "MM", "burma": "MM",
	"namibia": "NA", "nepal": "NP", "netherlands": "NL", "the netherlands": "NL",
	"holland": "NL", "new zealand": "NZ", "nicaragua": "NI", "niger": "NE",
	"nigeria": "NG", "north korea": "KP", "north macedonia": "MK",
	"macedonia": "MK", "norway": "NO", "oman": "OM", "pakistan": "PK",
	"palestine": "PS", "panama": "PA", "papua new guinea": "PG",
	"paraguay": "PY", "peru": "PE", "philippines": "PH", "poland": "PL",
	"portugal": "PT", "puerto rico": "PR", "qatar": "QA", "romania": "RO",
	"russia": "RU", "russian federation": "RU", "rwanda": "RW",
	"saudi arabia": "SA", "senegal": "SN", "serbia": "RS",
	"sierra leone": "SL", "singapore": "SG", "slovakia": "SK",
	"slovenia": "SI", "somalia": "SO", "south africa": "ZA",
	"south korea": "KR", "korea": "KR", "republic of korea": "KR",
	"south sudan": "SS", "spain": "ES", "españa": "ES", "sri lanka": "LK",
	"sudan": "SD", "suriname": "SR", "sweden": "SE", "switzerland": "CH",
	"syria": "SY", "taiwan": "TW", "tajikistan": "TJ", "tanzania": "TZ",
	"thailand": "TH", "togo": "TG", "trinidad and tobago": "TT",
	"tunisia": "TN", "turkey": "TR", "türkiye": "TR", "turkiye": "TR",
	"turkmenistan": "TM", "uganda": "UG", "ukraine": "UA",
	"united arab emirates": "AE", "uae": "AE", "united kingdom": "GB",
	"uk": "GB", "u.k.": "GB", "great britain": "GB", "britain": "GB",
	"england": "GB", "scotland": "GB", "wales": "GB", "northern ireland": "GB",
	"united states": "US", "united states of america": "US", "usa": "US",
	"u.s.a.": "US", "us": "US", "u.s.": "US", "america": "US",
	"uruguay": "UY", "uzbekistan": "UZ", "venezuela": "VE", "vietnam": "VN",
	"viet nam": "VN", "yemen": "YE", "zambia": "ZM", "zimbabwe": "ZW",
}

// usStates maps lower-cased US state names to their postal abbreviation.
var usStates = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT",
	"delaware": "DE", "district of columbia": "DC", "florida": "FL",
	"georgia": "GA", "hawaii": "HI", "idaho": "ID", "illinois": "IL",
	"indiana": "IN", "iowa": "IA", "kansas": "KS", "kentucky": "KY",
	"louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN",
	"mississippi": "MS", "missouri": "MO", "montana": "MT", "nebraska": "NE",
	"nevada": "NV", "new hampshire": "NH", "new jersey": "NJ",
	"new mexico": "NM", "new york": "NY", "north carolina": "NC",
	"north dakota": "ND", "ohio": "OH", "oklahoma": "OK", "oregon": "OR",
	"pennsylvania": "PA", "rhode island": "RI", "south carolina": "SC",
	"south dakota": "SD", "tennessee": "TN", "texas": "TX", "utah": "UT",
	"vermont": "VT", "virginia": "VA", "washington": "WA",
	"west virginia": "WV", "wisconsin": "WI", "wyoming": "WY",
}

// caProvinces maps lower-cased Canadian province and territory names to
// their postal abbreviation.
var caProvinces = map[string]string{
	"alberta": "AB", "british columbia": "BC", "manitoba": "MB",
	"new brunswick": "NB", "newfoundland and labrador": "NL",
	"newfoundland": "NL", "nova scotia": "NS", "ontario": "ON",
	"prince edward island": "PE", "quebec": "QC", "québec": "QC",
	"saskatchewan": "SK", "northwest territories": "NT", "nunavut": "NU",
	"yukon": "YT",
}

// cityCountries maps lower-cased major city names to country codes.
// Names shared by several well-known cities are left out.
var cityCountries = map[string]string{
	// United States
	"new york city": "US", "nyc": "US", "los angeles": "US", "chicago": "US",
	"houston": "US", "phoenix": "US", "philadelphia": "US",
	"san antonio": "US", "san diego": "US", "dallas": "US", "austin": "US",
	"san jose": "US", "san francisco": "US", "sf": "US", "seattle": "US",
	"denver": "US", "boston": "US", "atlanta": "US", "miami": "US",
	"portland": "US", "las vegas": "US", "detroit": "US", "nashville": "US",
	"minneapolis": "US", "pittsburgh": "US", "baltimore": "US",
	"salt lake city": "US", "silicon valley": "US", "bay area": "US",
	"brooklyn": "US", "manhattan": "US", "palo alto": "US",
	"mountain view": "US", "oakland": "US", "berkeley": "US",
	"cambridge, ma": "US", "washington dc": "US", "washington, dc": "US",
	"washington d.c.": "US", "dc": "US", "raleigh": "US", "charlotte": "US",
	"new orleans": "US", "honolulu": "US", "st. louis": "US",
	"kansas city": "US", "columbus": "US", "cleveland": "US",
	"sacramento": "US", "tampa": "US", "orlando": "US", "boulder": "US",
	// Canada
	"toronto": "CA", "vancouver": "CA", "montreal": "CA", "montréal": "CA",
	"calgary": "CA", "ottawa": "CA", "edmonton": "CA", "winnipeg": "CA",
	"waterloo": "CA", "halifax": "CA",
	// Europe
	"london": "GB", "manchester": "GB", "edinburgh": "GB", "glasgow": "GB",
	"bristol": "GB", "oxford": "GB", "birmingham": "GB", "leeds": "GB",
	"liverpool": "GB", "belfast": "GB", "cardiff": "GB",
	"paris": "FR", "lyon": "FR", "marseille": "FR", "toulouse": "FR",
	"berlin": "DE", "munich": "DE", "münchen": "DE", "hamburg": "DE",
	"frankfurt": "DE", "cologne": "DE", "köln": "DE", "stuttgart": "DE",
	"amsterdam": "NL", "rotterdam": "NL", "the hague": "NL", "utrecht": "NL",
	"brussels": "BE", "antwerp": "BE", "zurich": "CH", "zürich": "CH",
	"geneva": "CH", "vienna": "AT", "wien": "AT", "madrid": "ES",
	"barcelona": "ES", "valencia": "ES", "lisbon": "PT", "porto": "PT",
	"rome": "IT", "milan": "IT", "milano": "IT", "turin": "IT",
	"florence": "IT", "naples": "IT", "dublin": "IE", "cork": "IE",
	"copenhagen": "DK", "stockholm": "SE", "gothenburg": "SE", "oslo": "NO",
	"helsinki": "FI", "reykjavik": "IS", "warsaw": "PL", "krakow": "PL",
	"kraków": "PL", "prague": "CZ", "budapest": "HU", "bucharest": "RO",
	"sofia": "BG", "athens": "GR", "kyiv": "UA", "kiev": "UA",
	"moscow": "RU", "saint petersburg": "RU", "st. petersburg": "RU",
	"tallinn": "EE", "riga": "LV", "vilnius": "LT", "belgrade": "RS",
	"zagreb": "HR", "ljubljana": "SI", "istanbul": "TR", "ankara": "TR",
	// Asia / Pacific
	"tokyo": "JP", "osaka": "JP", "kyoto": "JP", "seoul": "KR",
	"busan": "KR", "beijing": "CN", "shanghai": "CN", "shenzhen": "CN",
	"guangzhou": "CN", "hangzhou": "CN", "taipei": "TW", "bangalore": "IN",
	"bengaluru": "IN", "mumbai": "IN", "delhi": "IN", "new delhi": "IN",
	"hyderabad": "IN", "chennai": "IN", "pune": "IN", "kolkata": "IN",
	"karachi": "PK", "lahore": "PK", "islamabad": "PK", "dhaka": "BD",
	"bangkok": "TH", "jakarta": "ID", "manila": "PH", "hanoi": "VN",
	"ho chi minh city": "VN", "kuala lumpur": "MY", "sydney": "AU",
	"melbourne": "AU", "brisbane": "AU", "perth": "AU", "adelaide": "AU",
	"canberra": "AU", "auckland": "NZ", "wellington": "NZ",
	"tel aviv": "IL", "jerusalem": "IL", "dubai": "AE", "abu dhabi": "AE",
	"doha": "QA", "riyadh": "SA",
	// Americas
	"mexico city": "MX", "guadalajara": "MX", "monterrey": "MX",
	"são paulo": "BR", "sao paulo": "BR", "rio de janeiro": "BR",
	"buenos aires": "AR", "santiago": "CL", "bogotá": "CO", "bogota": "CO",
	"medellín": "CO", "medellin": "CO", "lima": "PE", "montevideo": "UY",
	// Africa
	"lagos": "NG", "abuja": "NG", "nairobi": "KE", "cairo": "EG",
	"cape town": "ZA", "johannesburg": "ZA", "accra": "GH",
	"casablanca": "MA", "addis ababa": "ET", "kigali": "RW",
}
