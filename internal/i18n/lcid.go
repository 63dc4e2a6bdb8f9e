package i18n

// lcids maps language ids to the Windows locale identifiers that select them.
var lcids = map[string][]int{
	"en":    {1033, 2057, 3081, 4105, 5129, 6153, 7177, 8201, 9225, 10249, 11273},
	"fr":    {1036, 2060, 3084, 4108, 5132},
	"de":    {1031, 2055, 3079, 4103, 5127},
	"it_IT": {1040, 2064},
	"es_AR": {11274},
	"es_ES": {1034, 2058, 3082, 4106, 5130, 6154, 7178, 8202, 9226, 10250, 12298, 13322, 14346, 15370, 16394, 17418, 18442, 19466, 20490},
	"ja":    {1041},
	"ko":    {1042},
	"pl":    {1045},
	"pt_BR": {1046, 2070},
	"ru":    {1049},
	"zh_CN": {2052, 3076, 4100},
	"zh_TW": {1028},
}

var lcidIndex = func() map[int]string {
	idx := make(map[int]string)
	for lang, ids := range lcids {
		for _, id := range ids {
			idx[id] = lang
		}
	}
	return idx
}()

// LangFromLCID returns the language id for a Windows LCID, or "" when the
// identifier is not recognised.
func LangFromLCID(lcid int) string {
	return lcidIndex[lcid]
}
