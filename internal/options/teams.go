package options

// TeamNames are team names used on the show over the years.
var TeamNames = []string{
	"First Forte", "Impact", "Velocity", "Invicta", "Stealth", "Eclipse",
	"Alpha", "Renaissance", "Ignite", "Empire", "Apollo", "Synergy",
	"Venture", "Logic", "Sterling", "Phoenix", "Evolve", "Endeavour",
	"Revolution", "Instinct", "Kinetic", "Atomic", "Platinum", "Odyssey",
	"Versacorp", "Protégé", "Mosaic", "Apex", "Capital Edge", "Excel",
	"Hydra", "Athena", "Kotu", "Arrow", "Tenacity", "Fortitude",
}
