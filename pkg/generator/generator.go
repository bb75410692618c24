// Package generator produces synthetic batches for a class of the loaded
// ontology. Values follow the same heuristics real data follows (prefixed
// IDs, plausible names and emails, enum statuses), so generated batches
// exercise every layer of the codec: shared prefixes, repeated domains,
// repeated city names and statuses, and normalizable dates.
package generator

import (
	"math/rand"
	"strings"

	stringpool "github.com/dhruvd-1/semtok/pkg/strings"

	"github.com/dhruvd-1/semtok/pkg/codec"
	"github.com/dhruvd-1/semtok/pkg/errors"
	"github.com/dhruvd-1/semtok/pkg/ontology"
)

var (
	firstNames = []string{"John", "Mary", "James", "Patricia", "Robert", "Jennifer", "Michael", "Linda", "David", "Elizabeth", "Carlos", "Aisha", "Wei", "Priya", "Omar", "Sofia"}
	lastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Martinez", "Lopez", "Chen", "Patel", "Kim", "Nguyen"}
	domains    = []string{"example.com", "mail.com", "corp.io", "shop.net", "inbox.org"}
	cities     = []string{"New York", "Los Angeles", "Chicago", "Houston", "Phoenix", "Seattle", "Boston", "Denver", "Miami", "Austin"}
	streets    = []string{"Main St", "Oak Ave", "Maple Dr", "Cedar Ln", "Elm St", "Park Blvd", "Lake Rd", "Hill Ct"}
	countries  = []string{"USA", "Canada", "UK", "Germany", "France", "Japan", "Australia", "Brazil"}
	brands     = []string{"Samsung", "Apple", "Sony", "LG", "Nike", "Adidas", "Dell", "HP"}
	carriers   = []string{"FedEx", "UPS", "DHL", "USPS"}
	categories = []string{"Electronics", "Clothing", "Home & Garden", "Sports", "Books"}
	editions   = []string{"Pro", "Elite", "Classic", "Premium", "Standard"}

	orderStatuses   = []string{"pending", "processing", "shipped", "delivered", "cancelled"}
	paymentStatuses = []string{"pending", "completed", "failed"}
	genericStatuses = []string{"active", "inactive", "pending"}
	tiers           = []string{"bronze", "silver", "gold", "platinum"}
	paymentMethods  = []string{"credit_card", "debit_card", "paypal", "bank_transfer"}
	addressTypes    = []string{"shipping", "billing", "both"}
)

// Generator produces deterministic synthetic records for a seed.
type Generator struct {
	ont *ontology.Ontology
	rng *rand.Rand
}

// New creates a generator over the given ontology. The same seed always
// yields the same record sequence.
func New(ont *ontology.Ontology, seed int64) *Generator {
	return &Generator{ont: ont, rng: rand.New(rand.NewSource(seed))}
}

// Records generates n records for className using every property the class
// declares or inherits. Every value is checked against the class constraints
// before it lands in a record.
func (g *Generator) Records(className string, n int) ([]codec.Record, error) {
	class, ok := g.ont.FindClassByName(className)
	if !ok {
		return nil, errors.New(errors.ErrorTypeNotFound, "unknown class").
			WithDetail("class", className)
	}
	props := g.ont.PropertiesForClass(class.Name, true)
	if len(props) == 0 {
		return nil, errors.New(errors.ErrorTypeData, "class has no properties").
			WithDetail("class", class.Name)
	}

	records := make([]codec.Record, 0, n)
	for i := 1; i <= n; i++ {
		record := make(codec.Record, len(props))
		for _, name := range props {
			v := g.value(class.Name, name, i)
			if err := g.ont.ValidateValue(class.Name, name, v); err != nil {
				return nil, errors.Wrap(err, errors.ErrorTypeData, "generated value violates constraint").
					WithDetail("value", stringpool.ValueToString(v))
			}
			record[name] = v
		}
		records = append(records, record)
	}
	return records, nil
}

func (g *Generator) pick(options []string) string {
	return options[g.rng.Intn(len(options))]
}

func (g *Generator) date() string {
	year := 2015 + g.rng.Intn(10)
	month := 1 + g.rng.Intn(12)
	day := 1 + g.rng.Intn(28)
	return stringpool.Sprintf("%04d-%02d-%02d", year, month, day)
}

func (g *Generator) value(className, propName string, recordID int) interface{} {
	name := strings.ToLower(propName)
	datatype := "string"
	if prop, ok := g.ont.Property(propName); ok {
		datatype = prop.Datatype
	}

	switch {
	case strings.HasSuffix(name, "id"):
		prefix := strings.ToUpper(className)
		if len(prefix) > 3 {
			prefix = prefix[:3]
		}
		return stringpool.Sprintf("%s-%06d", prefix, recordID)
	case strings.Contains(name, "email"):
		user := strings.ToLower(g.pick(firstNames))
		return stringpool.Sprintf("%s%d@%s", user, recordID, g.pick(domains))
	case strings.Contains(name, "firstname"):
		return g.pick(firstNames)
	case strings.Contains(name, "lastname"):
		return g.pick(lastNames)
	case strings.Contains(name, "phone"):
		return stringpool.Sprintf("+1-%03d-%03d-%04d", 200+g.rng.Intn(800), g.rng.Intn(1000), g.rng.Intn(10000))
	case strings.Contains(name, "street"):
		return stringpool.Sprintf("%d %s", 1+g.rng.Intn(9999), g.pick(streets))
	case strings.Contains(name, "city"):
		return g.pick(cities)
	case strings.Contains(name, "postal") || strings.Contains(name, "zip"):
		return stringpool.Sprintf("%05d", g.rng.Intn(100000))
	case strings.Contains(name, "country"):
		return g.pick(countries)
	case strings.Contains(name, "brand"):
		return g.pick(brands)
	case strings.Contains(name, "carrier"):
		return g.pick(carriers)
	case strings.Contains(name, "tracking"):
		return stringpool.Sprintf("TRK-%010d", g.rng.Int63n(1e10))
	case strings.Contains(name, "productname"):
		return stringpool.Sprintf("%s %s %d", g.pick(categories), g.pick(editions), 1000+g.rng.Intn(9000))
	case strings.Contains(name, "categoryname") || name == "category":
		return g.pick(categories)
	case strings.Contains(name, "orderstatus"):
		return g.pick(orderStatuses)
	case strings.Contains(name, "paymentstatus"):
		return g.pick(paymentStatuses)
	case strings.Contains(name, "status"):
		return g.pick(genericStatuses)
	case strings.Contains(name, "tier"):
		return g.pick(tiers)
	case strings.Contains(name, "paymentmethod"):
		return g.pick(paymentMethods)
	case strings.Contains(name, "addresstype"):
		return g.pick(addressTypes)
	case strings.Contains(name, "rating"):
		return 1 + g.rng.Intn(5)
	case strings.Contains(name, "quantity") || strings.Contains(name, "stock"):
		return 1 + g.rng.Intn(100)
	case strings.Contains(name, "price") || strings.Contains(name, "amount") || strings.Contains(name, "total"):
		return float64(1000+g.rng.Intn(99000)) / 100
	case strings.Contains(name, "date") || strings.Contains(name, "time"):
		return g.date()
	case datatype == "boolean":
		return g.rng.Intn(2) == 1
	case datatype == "integer":
		return g.rng.Intn(1000)
	case datatype == "number":
		return float64(g.rng.Intn(100000)) / 100
	default:
		return stringpool.Sprintf("%s %s", className, name)
	}
}
