package options

// DefaultPhrases is the stock pool of boardroom moments.
var DefaultPhrases = []string{
	"\"You're fired!\"",
	"Candidate says \"110%\"",
	"Project manager blames the team",
	"Taxi of shame",
	"Someone cries in the boardroom",
	"\"I'm a winner\"",
	"Lord Sugar makes a pun",
	"Team name is a Greek god",
	"Terrible pitch to a retailer",
	"Candidate forgets the product name",
	"Haggling goes wrong",
	"Someone buys the wrong item",
	"Sub-team goes rogue",
	"Three brought back into the boardroom",
	"Karren raises an eyebrow",
	"Tim rolls his eyes",
	"\"Lord Sugar, I'm not a quitter\"",
	"Candidate mentions their CV",
	"Branding disaster",
	"Advert nobody understands",
	"Losing team in the greasy spoon",
	"Winning team treat",
	"\"Business is business\"",
	"Candidate talks over the PM",
	"Price set far too high",
	"Food task hygiene fail",
	"Early morning phone call",
	"\"Meet me in the boardroom\"",
	"Candidate uses football analogy",
	"Someone volunteers as PM to save themselves",
	"A product nobody wants",
	"Cheesy slogan",
	"Van gets lost",
	"Accountant reveals the figures",
	"Double firing",
	"Candidate claims leadership skills",
	"Spreadsheet panic",
	"Negotiation walk-out",
	"Discount task meltdown",
	"Candidate ignores the brief",
	"Team argues in the car",
	"Fancy dress costume",
	"Client looks unimpressed",
	"\"With regret\"",
	"Candidate name-drops their business",
	"Interview round ambush",
	"Corporate jargon overload",
	"Last-minute sales push",
}
