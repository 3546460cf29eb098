package lastwish

import "fmt"

// Instructions formats.
const (
	InstructionsText     = "text"
	InstructionsMarkdown = "markdown"
)

// Record is one raw row (asset, beneficiary or allocation) as decoded from
// JSON or YAML. Field names are matched against known aliases, so rows from
// different portfolio providers can be passed through unchanged.
type Record = map[string]any

// Person identifies the document owner.
type Person struct {
	Name    string `yaml:"name" json:"name"`
	Address string `yaml:"address" json:"address"`
	City    string `yaml:"city" json:"city"`
	State   string `yaml:"state" json:"state"`
	Zip     string `yaml:"zip" json:"zip"`
	Phone   string `yaml:"phone" json:"phone"`
	Email   string `yaml:"email" json:"email"`
}

// Executor identifies the person carrying out the instructions.
type Executor struct {
	Name          string `yaml:"name" json:"name"`
	Relationship  string `yaml:"relationship" json:"relationship"`
	Address       string `yaml:"address" json:"address"`
	Phone         string `yaml:"phone" json:"phone"`
	Email         string `yaml:"email" json:"email"`
	WalletAddress string `yaml:"walletAddress" json:"walletAddress"`
}

// Jurisdiction names where the acknowledgment is notarized.
type Jurisdiction struct {
	State  string `yaml:"state" json:"state"`
	County string `yaml:"county" json:"county"`
}

// Input contains everything one document is generated from.
type Input struct {
	Owner        Person       `yaml:"owner" json:"owner"`
	Executor     Executor     `yaml:"executor" json:"executor"`
	Jurisdiction Jurisdiction `yaml:"jurisdiction" json:"jurisdiction"`

	Assets        []Record `yaml:"assets" json:"assets"`
	Beneficiaries []Record `yaml:"beneficiaries" json:"beneficiaries"`
	Allocations   []Record `yaml:"allocations" json:"allocations"`

	// WalletProviders maps a wallet address to its provider name.
	WalletProviders map[string]string `yaml:"walletProviders" json:"walletProviders"`
	// ResolvedNames maps a wallet address to a resolved name (ENS and similar).
	ResolvedNames map[string]string `yaml:"resolvedNames" json:"resolvedNames"`

	Instructions       string `yaml:"instructions" json:"instructions"`
	InstructionsFormat string `yaml:"instructionsFormat" json:"instructionsFormat"` // "text" (default) or "markdown"
}

// Validate checks the fields Generate cannot recover from.
func (in *Input) Validate() error {
	switch in.InstructionsFormat {
	case "", InstructionsText, InstructionsMarkdown:
		return nil
	}
	return fmt.Errorf("%w: %q (must be %q or %q)",
		ErrInvalidInstructionsFormat, in.InstructionsFormat, InstructionsText, InstructionsMarkdown)
}
