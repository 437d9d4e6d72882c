package domain

// The category taxonomy is a closed set. The model is prompted with these exact
// labels and anything it returns outside the set is clamped to CategoryOther at
// the deserialization boundary.

// CategoryOther is the fallback label for anything the model cannot place.
const CategoryOther = "Other"

// ExpenseCategories are the labels assignable to expense transactions.
var ExpenseCategories = []string{
	"Food & Dining",
	"Transport",
	"Shopping",
	"Entertainment",
	"Bills & Utilities",
	"Rent & Housing",
	"Health & Fitness",
	CategoryOther,
}

// IncomeCategories are the labels assignable to income transactions.
var IncomeCategories = []string{
	"Salary",
	"Freelance",
	"Investment",
	CategoryOther,
}

// AllCategories is the de-duplicated union of expense and income categories,
// built once at package init. Order follows the expense list then the income
// list; callers must not mutate it.
var AllCategories = buildAllCategories()

var (
	categorySet = buildSet(AllCategories)
	incomeSet   = buildSet(IncomeCategories)
)

func buildAllCategories() []string {
	seen := make(map[string]bool, len(ExpenseCategories)+len(IncomeCategories))
	var all []string
	for _, c := range append(append([]string{}, ExpenseCategories...), IncomeCategories...) {
		if !seen[c] {
			seen[c] = true
			all = append(all, c)
		}
	}
	return all
}

func buildSet(categories []string) map[string]bool {
	set := make(map[string]bool, len(categories))
	for _, c := range categories {
		set[c] = true
	}
	return set
}

// KnownCategory reports whether the label is in the closed category set.
// Matching is exact: labels are case-sensitive, as prompted to the model.
func KnownCategory(category string) bool {
	return categorySet[category]
}

// NormalizeCategory clamps an unrecognized label to CategoryOther.
func NormalizeCategory(category string) string {
	if KnownCategory(category) {
		return category
	}
	return CategoryOther
}

// TypeOf derives the transaction type from its category. Income categories map
// to TypeIncome, everything else (including Other) to TypeExpense.
func TypeOf(category string) TransactionType {
	// "Other" appears in both sets. It is the fallback for ambiguous spending
	// and carries a default expense budget, so it reads as an expense.
	if incomeSet[category] && category != CategoryOther {
		return TypeIncome
	}
	return TypeExpense
}
