package gen

// Sample pools for synthetic data. Entity fields are drawn uniformly from
// these, so pool sizes bound the variety but not the validity of the output.

var firstNames = []string{"Avery", "Brooke", "Cameron", "Dakota", "Elliot", "Finley", "Harper", "Jordan", "Kai", "Logan"}

var lastNames = []string{"Smith", "Johnson", "Lee", "Patel", "Garcia", "Brown", "Martinez", "Lopez", "Kim", "Reyes"}

type cityCountry struct {
	City    string
	Country string
}

var cities = []cityCountry{
	{"Seattle", "United States"},
	{"Toronto", "Canada"},
	{"London", "United Kingdom"},
	{"Berlin", "Germany"},
	{"Paris", "France"},
	{"Sydney", "Australia"},
}

var productCategories = []string{"Electronics", "Home", "Outdoors", "Books", "Beauty", "Toys"}

var productAdjectives = []string{"Wireless", "Smart", "Eco", "Ultra", "Compact", "Pro"}

var productNouns = []string{"Speaker", "Lamp", "Backpack", "Tent", "Cookbook", "Serum", "Drone", "Headset"}

var orderStatuses = []string{"pending", "processing", "shipped", "delivered", "cancelled"}

var streetNames = []string{"Oak", "Pine", "Cedar", "Maple"}

var reviewComments = []string{
	"Fantastic quality and fast shipping",
	"Product was okay, could be better",
	"Exceeded expectations",
	"Not worth the price",
	"Solid purchase overall",
	"Impressed with the durability",
}
