package classify

// Reference lists for the category heuristics. These are data, not
// logic: extend the lists to tune classification, but the precedence
// order in Category must stay as is — the regional-domestic check runs
// before the franchise and international checks, and that ordering is
// what keeps e.g. a Ranji Trophy T20 out of the franchise bucket.
//
// All entries are matched as case-insensitive substrings of
// whitespace-normalized text.

// indianRegions are sub-national sides from the Indian domestic
// circuit. Region names that are substrings of franchise team names
// (mumbai, delhi, punjab, rajasthan, gujarat, hyderabad, bengal) are
// deliberately absent: with the regional check running first, listing
// them would swallow every IPL fixture. Matches for those sides are
// still caught through the domesticSeries fragments.
var indianRegions = []string{
	"andhra",
	"arunachal pradesh",
	"assam",
	"baroda",
	"bihar",
	"chandigarh",
	"chhattisgarh",
	"goa",
	"haryana",
	"himachal pradesh",
	"jammu and kashmir",
	"jharkhand",
	"karnataka",
	"kerala",
	"madhya pradesh",
	"maharashtra",
	"manipur",
	"meghalaya",
	"mizoram",
	"nagaland",
	"odisha",
	"pondicherry",
	"puducherry",
	"railways",
	"rest of india",
	"saurashtra",
	"services",
	"sikkim",
	"tamil nadu",
	"tripura",
	"uttar pradesh",
	"uttarakhand",
	"vidarbha",
}

// domesticSeries are Indian domestic competition fragments; any of
// them flags a match regional-domestic regardless of participants.
var domesticSeries = []string{
	"ranji",
	"syed mushtaq ali",
	"vijay hazare",
	"duleep",
	"irani",
	"deodhar",
	"cooch behar",
	"ck nayudu",
	"vinoo mankad",
}

// firstClassSeries are multi-day competition fragments, Indian and
// overseas.
var firstClassSeries = []string{
	"ranji",
	"duleep",
	"irani",
	"county championship",
	"sheffield shield",
	"plunket shield",
	"quaid-e-azam",
}

// multiDayTypes are match-type designations for multi-day cricket.
// "test" is not here: that is the international format abbreviation
// and belongs to internationalMarkers.
var multiDayTypes = []string{
	"first-class",
	"first class",
	"firstclass",
	"multi-day",
	"multiday",
	"4day",
	"4-day",
}

// franchiseLeagues are franchise T20 competition fragments.
var franchiseLeagues = []string{
	"indian premier league",
	"ipl",
	"big bash",
	"bbl",
	"pakistan super league",
	"psl",
	"caribbean premier league",
	"cpl",
	"sa20",
	"bangladesh premier league",
	"bpl",
	"lanka premier league",
	"lpl",
	"major league cricket",
	"the hundred",
	"international league t20",
	"ilt20",
	"mzansi",
	"women's premier league",
	"wpl",
}

// domesticLimitedOvers are domestic white-ball competition fragments.
var domesticLimitedOvers = []string{
	"syed mushtaq ali",
	"vijay hazare",
	"deodhar",
	"one day cup",
	"one-day cup",
	"royal london",
	"t20 blast",
	"vitality blast",
	"super smash",
	"charlotte edwards",
	"rachael heyhoe flint",
}

// internationalMarkers are the three international format
// abbreviations plus named global tournaments and the bilateral
// "tour of" phrasing.
var internationalMarkers = []string{
	"t20i",
	"odi",
	"test",
	"world cup",
	"champions trophy",
	"asia cup",
	"world test championship",
	"tour of",
	"tri-series",
	"tri series",
	"icc",
}

// womenMarkers flag women's cricket in series or match names.
var womenMarkers = []string{
	"women",
}

// liveMarkers are status fragments only seen while play is on or
// about to resume.
var liveMarkers = []string{
	"live",
	"day ",
	"innings break",
	"session",
	"opted to bat",
	"opted to bowl",
}

// finishedMarkers are status fragments for matches with no further
// play coming. "stumps" is here on purpose: close of play ends live
// tracking for the day exactly like a result does.
var finishedMarkers = []string{
	"won by",
	"tied",
	"drawn",
	"abandoned",
	"no result",
	"stumps",
	"complete",
	"finished",
}
