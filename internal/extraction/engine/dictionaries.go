package engine

import "regexp"

// Declaration order is load-bearing throughout this file: education levels
// resolve by precedence (higher credential first), field-of-study keeps the
// first two matching categories in table order, and country resolution stops
// at the first label with any matching variant. These are therefore ordered
// slices of (label, keywords) pairs, never maps.

var educationLevels = []struct {
	Level   string
	Pattern *regexp.Regexp
}{
	{"PhD", regexp.MustCompile(`\bph\.?\s?d\b|doctorate|doctoral`)},
	{"Master's", regexp.MustCompile(`\bmaster(?:'s)?\b|\bm\.?sc\b|\bm\.?a\b|\bmba\b`)},
	{"Bachelor's", regexp.MustCompile(`\bbachelor(?:'s)?\b|\bb\.?sc\b|\bb\.?a\b|\bb\.?eng\b`)},
	{"High School", regexp.MustCompile(`\bhigh school\b|\bsecondary school\b`)},
}

var fieldCategories = []struct {
	Label    string
	Keywords []string
}{
	{"Computer Science", []string{"computer science", "software", "programming", "information technology", "computer engineering", "data science"}},
	{"Engineering", []string{"engineering", "mechanical", "electrical", "civil", "aerospace"}},
	{"Business", []string{"business", "management", "marketing", "finance", "economics", "accounting"}},
	{"Medicine", []string{"medicine", "medical", "nursing", "pharmacy", "dentistry", "healthcare"}},
	{"Law", []string{"law degree", "legal studies", "jurisprudence", "llb"}},
	{"Science", []string{"physics", "chemistry", "biology", "mathematics", "statistics"}},
	{"Arts", []string{"fine arts", "graphic design", "literature", "philosophy", "linguistics"}},
}

var countries = []struct {
	Label    string
	Keywords []string
}{
	{"USA", []string{"united states", "usa", "new york", "san francisco", "california", "seattle", "boston", "chicago", "austin", "texas"}},
	{"UK", []string{"united kingdom", "england", "london", "manchester", "edinburgh", "scotland"}},
	{"Canada", []string{"canada", "toronto", "vancouver", "montreal", "ottawa"}},
	{"Germany", []string{"germany", "berlin", "munich", "hamburg", "frankfurt", "cologne"}},
	{"France", []string{"france", "paris", "lyon", "toulouse"}},
	{"Netherlands", []string{"netherlands", "amsterdam", "rotterdam", "eindhoven"}},
	{"India", []string{"india", "bangalore", "bengaluru", "mumbai", "delhi", "hyderabad", "pune", "chennai"}},
	{"China", []string{"china", "beijing", "shanghai", "shenzhen", "hangzhou"}},
	{"Japan", []string{"japan", "tokyo", "osaka", "kyoto"}},
	{"Singapore", []string{"singapore"}},
	{"Australia", []string{"australia", "sydney", "melbourne", "brisbane"}},
	{"UAE", []string{"united arab emirates", "dubai", "abu dhabi"}},
	{"Brazil", []string{"brazil", "sao paulo", "rio de janeiro"}},
	{"Nigeria", []string{"nigeria", "lagos", "abuja"}},
	{"Switzerland", []string{"switzerland", "zurich", "geneva"}},
}

// skillVocabulary lists known skill tokens, lowercase. Matching is a plain
// substring test; output capitalizes the first letter of the token as-is,
// so "javascript" surfaces as "Javascript" and "node.js" as "Node.js".
var skillVocabulary = []string{
	"javascript",
	"typescript",
	"python",
	"java",
	"golang",
	"c++",
	"c#",
	"php",
	"ruby",
	"swift",
	"kotlin",
	"rust",
	"scala",
	"react",
	"angular",
	"vue",
	"node.js",
	"django",
	"flask",
	"spring",
	"laravel",
	"rails",
	"html",
	"css",
	"sql",
	"mysql",
	"postgresql",
	"mongodb",
	"redis",
	"elasticsearch",
	"kafka",
	"rabbitmq",
	"graphql",
	"aws",
	"azure",
	"gcp",
	"docker",
	"kubernetes",
	"terraform",
	"ansible",
	"jenkins",
	"git",
	"linux",
	"machine learning",
	"deep learning",
	"tensorflow",
	"pytorch",
	"pandas",
	"numpy",
	"spark",
	"hadoop",
	"tableau",
	"power bi",
	"excel",
	"jira",
	"agile",
	"scrum",
	"devops",
	"microservices",
	"ci/cd",
}
