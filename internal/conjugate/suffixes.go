package conjugate

import "github.com/speaknative/verbgen/internal/models"

// sourceSuffixes holds the regular endings per verb class. Every class maps
// every tense and person.
var sourceSuffixes = map[models.VerbClass]map[models.Tense]map[models.Person]string{
	models.ClassAR: {
		models.TensePresent: {"1s": "o", "2s": "as", "3s": "a", "1p": "amos", "3p": "an"},
		models.TensePast:    {"1s": "é", "2s": "aste", "3s": "ó", "1p": "amos", "3p": "aron"},
		models.TenseFuture:  {"1s": "aré", "2s": "arás", "3s": "ará", "1p": "aremos", "3p": "arán"},
	},
	models.ClassER: {
		models.TensePresent: {"1s": "o", "2s": "es", "3s": "e", "1p": "emos", "3p": "en"},
		models.TensePast:    {"1s": "í", "2s": "iste", "3s": "ió", "1p": "imos", "3p": "ieron"},
		models.TenseFuture:  {"1s": "eré", "2s": "erás", "3s": "erá", "1p": "eremos", "3p": "erán"},
	},
	models.ClassIR: {
		models.TensePresent: {"1s": "o", "2s": "es", "3s": "e", "1p": "imos", "3p": "en"},
		models.TensePast:    {"1s": "í", "2s": "iste", "3s": "ió", "1p": "imos", "3p": "ieron"},
		models.TenseFuture:  {"1s": "iré", "2s": "irás", "3s": "irá", "1p": "iremos", "3p": "irán"},
	},
}

// Target-language heuristics.
const (
	// infinitiveMarker prefixes every target-language infinitive.
	infinitiveMarker = "to "

	// thirdSingularMarker is appended in the present for PersonThirdSingular.
	thirdSingularMarker = "s"

	// pastSuffix is appended for every person in the past. When the verb
	// already ends in its first letter only the remainder is appended.
	pastSuffix = "ed"

	// futureModal is prepended for every person in the future.
	futureModal = "will "
)
