package storage

import "strings"

// Canonical dataset column names.
const (
	ColSuburb         = "suburb"
	ColAddress        = "address"
	ColPrice          = "price"
	ColRooms          = "rooms"
	ColTotalRooms     = "total_rooms"
	ColBathrooms      = "bathrooms"
	ColGarage         = "garage"
	ColLandSize       = "land_size"
	ColBuildingArea   = "building_area"
	ColYearBuilt      = "year_built"
	ColPostcode       = "postcode"
	ColLatitude       = "latitude"
	ColLongitude      = "longitude"
	ColRegionName     = "region_name"
	ColRegionCount    = "region_count"
	ColPredictedPrice = "predicted_price"
	ColType           = "type"
	ColDistance       = "distance"
)

// Columns lists the canonical columns in export order.
var Columns = []string{
	ColSuburb, ColAddress, ColPrice, ColRooms, ColTotalRooms, ColBathrooms,
	ColGarage, ColLandSize, ColBuildingArea, ColYearBuilt, ColPostcode,
	ColLatitude, ColLongitude, ColRegionName, ColRegionCount,
	ColPredictedPrice, ColType, ColDistance,
}

// columnAliases maps lower-cased header spellings to canonical columns. The
// Portuguese headers are the ones the published dataset ships with.
var columnAliases = map[string]string{
	"subúrbio":                        ColSuburb,
	"endereço":                        ColAddress,
	"preço":                           ColPrice,
	"quartos":                         ColRooms,
	"salas":                           ColTotalRooms,
	"banheiros":                       ColBathrooms,
	"garagem":                         ColGarage,
	"tamanho do terreno":              ColLandSize,
	"área construída":                 ColBuildingArea,
	"ano de construção":               ColYearBuilt,
	"código postal":                   ColPostcode,
	"nome da região":                  ColRegionName,
	"quantidade de imóveis na região": ColRegionCount,
	"preço previsto lightgbm":         ColPredictedPrice,
	"tipo":                            ColType,
	"distância":                       ColDistance,
	"bedrooms":                        ColRooms,
	"cars":                            ColGarage,
	"car":                             ColGarage,
	"lat":                             ColLatitude,
	"lon":                             ColLongitude,
	"lng":                             ColLongitude,
}

// CanonicalColumn resolves a header to its canonical name. The second result
// is false for columns the dataset model does not know about.
func CanonicalColumn(header string) (string, bool) {
	h := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header, "\ufeff")))
	if alias, ok := columnAliases[h]; ok {
		return alias, true
	}
	h = strings.ReplaceAll(h, " ", "_")
	for _, c := range Columns {
		if c == h {
			return c, true
		}
	}
	return "", false
}
