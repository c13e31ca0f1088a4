package categorize

// streaming services are listed under both Utilities and Entertainment;
// Utilities is declared first and wins.
var streaming = []string{`netflix`, `spotify`, `apple`, `amazon\s*prime`, `hulu`, `disney\+`}

// DefaultSpecs is the built-in rule table in evaluation order.
func DefaultSpecs() []RuleSpec {
	return []RuleSpec{
		{Label: "Food & Dining", Patterns: []string{
			`restaurant`, `cafe`, `coffee`, `dining`, `food`, `grocery`, `supermarket`,
			`market`, `bakery`, `meal`, `uber\s*eats`, `doordash`, `grubhub`, `mcdonalds`,
			`starbucks`, `subway`, `pizza`, `taco`, `burger`,
		}},
		{Label: "Transportation", Patterns: []string{
			`gas`, `presto`, `fuel`, `uber`, `lyft`, `taxi`, `cab`, `transport`, `transit`,
			`train`, `metro`, `subway`, `bus`, `parking`, `toll`, `air\s*fare`, `airline`,
			`flight`, `car\s*rental`,
		}},
		{Label: "Housing", Patterns: []string{
			`rent`, `lease`, `mortgage`, `home`, `house`, `property`, `real\s*estate`,
			`condo`, `apartment`, `apt`, `insurance`,
		}},
		{Label: "Utilities", Patterns: append([]string{
			`electric`, `bell`, `water`, `gas\s*bill`, `hydro`, `utility`, `utilities`,
			`internet`, `wifi`, `phone`, `mobile`, `telecom`, `cable`, `tv\s*service`,
			`streaming`,
		}, streaming...)},
		{Label: "Entertainment", Patterns: append([]string{
			`movie`, `cinema`, `theater`, `theatre`, `concert`, `event`, `ticket`, `show`,
			`game`, `sport`, `recreation`, `amusement`,
		}, streaming...)},
		{Label: "Shopping", Patterns: []string{
			`amazon`, `walmart`, `target`, `costco`, `shop`, `store`, `retail`, `mall`,
			`purchase`, `buy`, `clothing`, `fashion`, `apparel`, `electronics`, `hardware`,
			`furniture`, `decor`,
		}},
		{Label: "Health & Fitness", Patterns: []string{
			`doctor`, `medical`, `health`, `hospital`, `clinic`, `pharmacy`, `drug`,
			`prescription`, `gym`, `fitness`, `exercise`, `workout`, `sport`, `training`,
			`therapy`, `dental`, `dentist`, `eye`, `optical`,
		}},
	}
}

// Default returns the built-in rule set.
func Default() *RuleSet {
	rs, err := Compile(DefaultSpecs())
	if err != nil {
		panic("categorize: default rules: " + err.Error())
	}
	return rs
}
