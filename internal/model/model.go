// Package model defines the canonical records shared by the generation stages.
//
// Values are produced once by the normalizer and are treated as read-only by
// every later stage.
package model

// Kind distinguishes divisible assets from indivisible ones.
type Kind string

// Asset kinds.
const (
	Fungible    Kind = "fungible"
	NonFungible Kind = "non-fungible"
)

// AllocationKind tells how an allocation value is interpreted.
type AllocationKind string

// Allocation kinds.
const (
	Percentage AllocationKind = "percentage"
	Amount     AllocationKind = "amount"
)

// UnknownWallet is the wallet address used for assets without attribution.
const UnknownWallet = "Unknown"

// UnknownProvider labels wallets whose provider is not known.
const UnknownProvider = "Unknown"

// Asset is a normalized holding in one wallet on one chain.
type Asset struct {
	ID               string
	Chain            string
	Kind             Kind
	Symbol           string
	Name             string
	Balance          string // decimal string
	FormattedBalance string
	WalletAddress    string
	Provider         string // optional
	ImageURL         string // optional
	TokenID          string // optional, token or inscription id
}

// IsNonFungible reports whether the asset can only be transferred whole.
func (a Asset) IsNonFungible() bool {
	return a.Kind == NonFungible
}

// Beneficiary is a person receiving assets.
type Beneficiary struct {
	ID            string
	Name          string
	WalletAddress string
	ResolvedName  string // optional
	Phone         string
	Email         string
	Relationship  string
}

// Allocation assigns part or all of one asset to one beneficiary.
type Allocation struct {
	AssetID       string
	BeneficiaryID string
	Kind          AllocationKind
	Value         float64
	ValueText     string // value as supplied, used for verbatim rendering
}

// ChainGroup holds the assets of one wallet on one chain.
type ChainGroup struct {
	Chain  string
	Assets []Asset
}

// WalletGroup holds every asset attributed to one wallet, grouped by chain.
type WalletGroup struct {
	Address      string
	Provider     string
	ResolvedName string
	ColorIndex   int
	Chains       []ChainGroup
}

// Dataset is the normalized input of one generation.
type Dataset struct {
	Assets        []Asset
	Beneficiaries []Beneficiary
	Allocations   []Allocation
}

// AllocationsFor returns the allocations referencing assetID, in input order.
func (d Dataset) AllocationsFor(assetID string) []Allocation {
	var out []Allocation
	for _, a := range d.Allocations {
		if a.AssetID == assetID {
			out = append(out, a)
		}
	}
	return out
}

// Beneficiary looks up a beneficiary by id.
func (d Dataset) Beneficiary(id string) (Beneficiary, bool) {
	for _, b := range d.Beneficiaries {
		if b.ID == id {
			return b, true
		}
	}
	return Beneficiary{}, false
}
