package domain

// IconKind is the closed set of icon tags the ledger stores for transactions and goals.
// The presentation layer resolves a tag to a concrete icon; the ledger never stores more than the tag.
type IconKind string

const (
	IconShoppingCart IconKind = "ShoppingCart"
	IconWallet       IconKind = "Wallet"
	IconCreditCard   IconKind = "CreditCard"
	IconPiggyBank    IconKind = "PiggyBank"
	IconTrendingUp   IconKind = "TrendingUp"
)

// IconKinds lists every known icon tag.
var IconKinds = []IconKind{IconShoppingCart, IconWallet, IconCreditCard, IconPiggyBank, IconTrendingUp}

// IsValid reports whether k is a known icon tag.
func (k IconKind) IsValid() bool {
	for _, known := range IconKinds {
		if k == known {
			return true
		}
	}
	return false
}

// TransactionIcon returns the icon to render for a transaction, falling back to ShoppingCart.
func TransactionIcon(k IconKind) IconKind {
	switch k {
	case IconShoppingCart, IconWallet, IconCreditCard:
		return k
	}
	return IconShoppingCart
}

// GoalIcon returns the icon to render for a goal, falling back to PiggyBank.
func GoalIcon(k IconKind) IconKind {
	switch k {
	case IconPiggyBank, IconTrendingUp, IconCreditCard:
		return k
	}
	return IconPiggyBank
}
