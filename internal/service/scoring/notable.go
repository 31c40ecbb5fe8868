package scoring

// Fixed membership sets for the interest score. Held on the engine instance
// so deployments can override them without code changes.

var defaultNotableInsiders = []string{
	// Congress
	"Nancy Pelosi", "Dan Crenshaw", "Tommy Tuberville", "Mark Green",
	"Josh Gottheimer", "Michael McCaul", "Pat Fallon", "Virginia Foxx",
	"Ro Khanna", "Marjorie Taylor Greene",
	// Famous CEOs
	"Elon Musk", "Tim Cook", "Satya Nadella", "Lisa Su", "Jensen Huang",
	"Jamie Dimon", "Warren Buffett", "Mark Zuckerberg", "Sundar Pichai",
	"Andy Jassy", "Pat Gelsinger", "Hock Tan",
	// Known investors
	"Cathie Wood", "Michael Burry", "Carl Icahn", "Bill Ackman",
	"George Soros", "Ken Griffin", "Ray Dalio", "Stanley Druckenmiller",
	"David Tepper", "Howard Marks",
}

var defaultHighSignalTitles = []string{
	"ceo", "cfo", "coo", "cto", "president", "chairman",
	"chief executive", "chief financial", "chief operating",
	"director", "10% owner", "officer",
}
