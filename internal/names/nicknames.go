package names

import "strings"

// nicknameMap maps informal first-name variants to a canonical form.
// Covers 100+ common English nicknames so that "Bob Smith" and
// "Robert Smith" resolve to the same person key.
var nicknameMap = map[string]string{
	// Male names
	"bob": "robert", "rob": "robert", "bobby": "robert", "robbie": "robert", "bert": "robert",
	"bill": "william", "will": "william", "billy": "william", "willy": "william", "liam": "william",
	"mike": "michael", "mick": "michael", "mickey": "michael", "mikey": "michael",
	"jim": "james", "jimmy": "james", "jamie": "james",
	"joe": "joseph", "joey": "joseph",
	"tom": "thomas", "tommy": "thomas", "thom": "thomas",
	"dick": "richard", "rick": "richard", "ricky": "richard", "rich": "richard",
	"dan": "daniel", "danny": "daniel",
	"dave": "david", "davy": "david",
	"steve": "steven", "stevie": "steven",
	"chris": "christopher", "kit": "christopher",
	"matt": "matthew", "matty": "matthew",
	"tony": "anthony", "ant": "anthony",
	"andy": "andrew", "drew": "andrew",
	"nick": "nicholas", "nicky": "nicholas",
	"ed": "edward", "eddie": "edward", "ted": "edward", "teddy": "edward",
	"al": "albert", "albie": "albert",
	"alex": "alexander", "xander": "alexander",
	"ben": "benjamin", "benny": "benjamin", "benji": "benjamin",
	"chuck": "charles", "charlie": "charles", "chas": "charles",
	"frank": "francis", "frankie": "francis", "fran": "francis",
	"fred": "frederick", "freddy": "frederick", "freddie": "frederick",
	"greg": "gregory",
	"hank": "henry", "harry": "henry", "hal": "henry",
	"jack": "john", "johnny": "john", "jon": "john",
	"jake": "jacob",
	"jeff": "jeffrey", "geoff": "geoffrey",
	"jerry": "gerald", "gerry": "gerald",
	"josh": "joshua",
	"larry": "lawrence", "lars": "lawrence",
	"leo": "leonard", "lenny": "leonard",
	"louie": "louis", "lou": "louis",
	"mark": "marcus",
	"marty": "martin",
	"max": "maxwell", "maxie": "maxwell",
	"nate": "nathan", "nathaniel": "nathan",
	"pat": "patrick", "paddy": "patrick",
	"pete": "peter", "petey": "peter",
	"phil": "philip", "pip": "philip",
	"ray": "raymond",
	"ron": "ronald", "ronnie": "ronald",
	"sam": "samuel", "sammy": "samuel",
	"stan": "stanley",
	"tim": "timothy", "timmy": "timothy",
	"vic": "victor",
	"wally": "walter", "walt": "walter",
	"zach": "zachary", "zack": "zachary",

	// Female names
	"beth": "elizabeth", "liz": "elizabeth", "lizzy": "elizabeth", "betty": "elizabeth",
	"libby": "elizabeth", "eliza": "elizabeth", "lisa": "elizabeth", "ellie": "elizabeth",
	"kate": "katherine", "kathy": "katherine", "katie": "katherine", "cathy": "catherine",
	"kat": "katherine", "kitty": "katherine",
	"jenny": "jennifer", "jen": "jennifer", "jenn": "jennifer",
	"sue": "susan", "susie": "susan", "suzy": "susan",
	"maggie": "margaret", "meg": "margaret", "peggy": "margaret", "marge": "margaret",
	"margie": "margaret", "madge": "margaret", "greta": "margaret",
	"pam": "pamela",
	"patty": "patricia", "trish": "patricia", "tricia": "patricia",
	"barb": "barbara", "barbie": "barbara", "babs": "barbara",
	"deb": "deborah", "debbie": "deborah", "debby": "deborah",
	"becky": "rebecca", "becca": "rebecca",
	"vicky": "victoria", "vicki": "victoria", "tori": "victoria",
	"chrissy": "christine", "tina": "christine",
	"lexie": "alexandra", "sandy": "sandra",
	"mandy": "amanda",
	"angie": "angela", "angel": "angela",
	"annie": "anne", "ann": "anne", "anna": "anne", "nancy": "anne",
	"bea": "beatrice", "trixie": "beatrice",
	"carol": "caroline", "carrie": "caroline",
	"cindy": "cynthia",
	"connie": "constance",
	"di": "diana", "diane": "diana",
	"donna": "madonna",
	"dot": "dorothy", "dottie": "dorothy",
	"ella": "eleanor", "nell": "eleanor", "nelly": "eleanor",
	"frannie": "frances", "francie": "frances",
	"gail": "abigail", "abby": "abigail",
	"ginny": "virginia", "ginger": "virginia",
	"grace": "gracie",
	"jan": "janet", "janice": "janet",
	"jo": "josephine", "josie": "josephine",
	"judy": "judith", "judi": "judith",
	"jules": "julia", "julie": "julia",
	"kay": "katherine",
	"kim": "kimberly", "kimmy": "kimberly",
	"laurie": "laura", "lori": "laura",
	"linda": "belinda", "lindy": "belinda",
	"lucy": "lucille",
	"lynn": "linda",
	"maddie": "madeline", "maddy": "madeline",
	"mary": "marie", "maria": "mary", "molly": "mary", "polly": "mary",
	"mel": "melanie", "melinda": "melanie",
	"mia": "maria",
	"millie": "millicent", "mildred": "millicent",
	"minnie": "wilhelmina",
	"missy": "melissa",
	"nan": "nancy",
	"nat": "natalie",
	"nicki": "nicole", "nikki": "nicole",
	"penny": "penelope",
	"paula": "pauline",
	"rose": "rosemary", "rosie": "rosemary",
	"sally": "sarah", "sadie": "sarah",
	"samantha": "sam",
	"shelly": "michelle", "shell": "michelle",
	"stacy": "anastasia",
	"terri": "theresa", "terry": "theresa", "tess": "theresa",
	"tiff": "tiffany",
	"val": "valerie",
	"wendy": "gwendolyn", "gwen": "gwendolyn",
}

// canonicalNames is the bidirectional lookup built from nicknameMap:
// every nickname maps to its canonical form, and every canonical form
// maps to itself. Built once at init; never mutated afterwards.
var canonicalNames = func() map[string]string {
	m := make(map[string]string, 2*len(nicknameMap))
	for nick, canonical := range nicknameMap {
		m[nick] = canonical
	}
	// Self-maps go last: a name that is both a nickname and another
	// entry's canonical form ("sam", "mary") resolves to itself.
	for _, canonical := range nicknameMap {
		m[canonical] = canonical
	}
	return m
}()

// ResolveNickname resolves a first name to its canonical form.
// Unknown names are returned unchanged (lowercased):
//
//	ResolveNickname("bob")     == "robert"
//	ResolveNickname("Robert")  == "robert"
//	ResolveNickname("unknown") == "unknown"
func ResolveNickname(name string) string {
	if name == "" {
		return ""
	}
	lower := strings.ToLower(name)
	if canonical, ok := canonicalNames[lower]; ok {
		return canonical
	}
	return lower
}

// AddNicknames extends the canonical-name lookup with extra nickname
// pairs from configuration. Call before any matching starts; the table
// is not safe for mutation once clustering is running.
func AddNicknames(extra map[string]string) {
	cleaned := make(map[string]string, len(extra))
	for nick, canonical := range extra {
		n := strings.ToLower(strings.TrimSpace(nick))
		c := strings.ToLower(strings.TrimSpace(canonical))
		if n == "" || c == "" {
			continue
		}
		cleaned[n] = c
	}
	for nick, canonical := range cleaned {
		canonicalNames[nick] = canonical
	}
	for _, canonical := range cleaned {
		canonicalNames[canonical] = canonical
	}
}
