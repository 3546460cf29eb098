// Package normalize turns raw, alias-bearing input rows into canonical records.
//
// Upstream collaborators deliver assets from several portfolio providers, each
// with its own field names. Every alias chain is resolved here, once, so the
// rest of the engine reads a single shape.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/ArtieFishal/lastwish/internal/model"
)

// Record is one raw input row as decoded from JSON or YAML.
type Record = map[string]any

// Raw groups the raw collections of one generation request.
type Raw struct {
	Assets        []Record
	Beneficiaries []Record
	Allocations   []Record

	// ResolvedNames maps a wallet address to its resolved name. It fills
	// beneficiaries whose rows carry no name of their own.
	ResolvedNames map[string]string
}

// Alias chains, first present non-empty key wins.
var (
	assetIDKeys       = []string{"id", "assetId", "asset_id"}
	contractKeys      = []string{"contractAddress", "tokenAddress", "mint"}
	chainKeys         = []string{"chain", "network", "blockchain", "chainId"}
	kindKeys          = []string{"type", "kind", "assetType", "tokenType"}
	symbolKeys        = []string{"symbol", "ticker"}
	nameKeys          = []string{"name", "title", "collectionName"}
	balanceKeys       = []string{"balance", "amount", "quantity"}
	formattedKeys     = []string{"formattedBalance", "balanceFormatted", "displayBalance", "uiAmount"}
	walletKeys        = []string{"walletAddress", "wallet", "ownerAddress", "owner", "sourceWallet"}
	providerKeys      = []string{"walletProvider", "provider", "providerName", "walletName"}
	imageKeys         = []string{"imageUrl", "image_url", "imageURL", "image", "thumbnail", "logo", "logoUrl", "metadata.image", "metadata.image_url"}
	tokenIDKeys       = []string{"tokenId", "token_id", "inscriptionId", "inscription_id", "nftId"}
	beneficiaryIDKeys = []string{"id", "beneficiaryId"}
	personNameKeys    = []string{"name", "fullName", "displayName"}
	addressKeys       = []string{"walletAddress", "address", "wallet"}
	resolvedNameKeys  = []string{"ensName", "resolvedName", "ens"}
	allocAssetKeys    = []string{"assetId", "asset_id", "asset"}
	allocBenefKeys    = []string{"beneficiaryId", "beneficiary_id", "beneficiary"}
	allocKindKeys     = []string{"type", "kind", "allocationType"}
)

// nonFungibleKinds lists kind values that denote an indivisible asset.
var nonFungibleKinds = map[string]bool{
	"nft":          true,
	"erc721":       true,
	"erc-721":      true,
	"erc1155":      true,
	"erc-1155":     true,
	"non-fungible": true,
	"nonfungible":  true,
	"ordinal":      true,
	"inscription":  true,
	"collectible":  true,
}

// Normalize canonicalizes raw rows. It never fails: missing optional fields
// become empty strings and allocations pointing at unknown assets or
// beneficiaries are dropped and logged.
//
// Asset ids are unique in the result. A repeated id is suffixed with the
// row position. An allocation may name an asset by its contract address
// when exactly one asset carries that contract; otherwise it is dropped.
func Normalize(raw Raw, logger *zap.Logger) model.Dataset {
	if logger == nil {
		logger = zap.NewNop()
	}

	ds := model.Dataset{
		Assets:        make([]model.Asset, 0, len(raw.Assets)),
		Beneficiaries: make([]model.Beneficiary, 0, len(raw.Beneficiaries)),
		Allocations:   make([]model.Allocation, 0, len(raw.Allocations)),
	}

	ids := make(map[string]bool, len(raw.Assets))
	copies := make(map[string][]string, len(raw.Assets))
	byContract := make(map[string][]string)
	for i, rec := range raw.Assets {
		a := NormalizeAsset(rec, i)
		given := a.ID
		if ids[a.ID] {
			renamed := fmt.Sprintf("%s-%d", a.ID, i)
			for n := 2; ids[renamed]; n++ {
				renamed = fmt.Sprintf("%s-%d-%d", a.ID, i, n)
			}
			logger.Warn("renaming duplicate asset id",
				zap.Int("index", i),
				zap.String("assetId", a.ID),
				zap.String("renamed", renamed))
			a.ID = renamed
		}
		ids[a.ID] = true
		copies[given] = append(copies[given], a.ID)
		if contract := first(rec, contractKeys...); contract != "" {
			byContract[contract] = append(byContract[contract], a.ID)
		}
		ds.Assets = append(ds.Assets, a)
	}

	names := ByDisplayAddress(raw.ResolvedNames)
	benefIDs := make(map[string]bool, len(raw.Beneficiaries))
	for i, rec := range raw.Beneficiaries {
		b := NormalizeBeneficiary(rec, i)
		if b.ResolvedName == "" {
			b.ResolvedName = names[b.WalletAddress]
		}
		benefIDs[b.ID] = true
		ds.Beneficiaries = append(ds.Beneficiaries, b)
	}

	for i, rec := range raw.Allocations {
		alloc := NormalizeAllocation(rec)
		switch target, candidates := resolveAsset(alloc.AssetID, ids, copies, byContract); {
		case target != "":
			alloc.AssetID = target
		case len(candidates) > 0:
			logger.Warn("dropping ambiguous allocation",
				zap.Int("index", i),
				zap.String("assetId", alloc.AssetID),
				zap.Strings("candidates", candidates),
				zap.String("beneficiaryId", alloc.BeneficiaryID))
			continue
		default:
			logger.Warn("dropping allocation for unknown asset",
				zap.Int("index", i),
				zap.String("assetId", alloc.AssetID),
				zap.String("beneficiaryId", alloc.BeneficiaryID))
			continue
		}
		if !benefIDs[alloc.BeneficiaryID] {
			logger.Warn("dropping allocation for unknown beneficiary",
				zap.Int("index", i),
				zap.String("assetId", alloc.AssetID),
				zap.String("beneficiaryId", alloc.BeneficiaryID))
			continue
		}
		ds.Allocations = append(ds.Allocations, alloc)
	}

	return ds
}

// resolveAsset maps an allocation's asset reference to one asset id. An
// exact, unrepeated id wins; a contract address held by a single asset is
// accepted. Otherwise target is empty and candidates lists the assets the
// reference could mean.
func resolveAsset(ref string, ids map[string]bool, copies, byContract map[string][]string) (target string, candidates []string) {
	if len(copies[ref]) > 1 {
		return "", copies[ref]
	}
	if ids[ref] {
		return ref, nil
	}
	held := byContract[ref]
	if len(held) == 1 {
		return held[0], nil
	}
	return "", held
}

// NormalizeAsset resolves aliases for one asset row. Rows without an id are
// identified by their contract address, joined with the token id when one
// is present ("0xabc:7"), and by position when neither exists.
func NormalizeAsset(rec Record, position int) model.Asset {
	a := model.Asset{
		ID:               first(rec, assetIDKeys...),
		Chain:            first(rec, chainKeys...),
		Kind:             assetKind(first(rec, kindKeys...)),
		Symbol:           first(rec, symbolKeys...),
		Name:             first(rec, nameKeys...),
		Balance:          first(rec, balanceKeys...),
		FormattedBalance: first(rec, formattedKeys...),
		WalletAddress:    DisplayAddress(first(rec, walletKeys...)),
		Provider:         first(rec, providerKeys...),
		ImageURL:         first(rec, imageKeys...),
		TokenID:          first(rec, tokenIDKeys...),
	}
	if a.ID == "" {
		a.ID = first(rec, contractKeys...)
		if a.ID != "" && a.TokenID != "" {
			a.ID += ":" + a.TokenID
		}
	}
	if a.ID == "" {
		a.ID = fmt.Sprintf("asset-%d", position)
	}
	if a.Balance == "" {
		a.Balance = "0"
	}
	if a.FormattedBalance == "" {
		a.FormattedBalance = a.Balance
	}
	if a.WalletAddress == "" {
		a.WalletAddress = model.UnknownWallet
	}
	return a
}

// NormalizeBeneficiary resolves aliases for one beneficiary row.
func NormalizeBeneficiary(rec Record, position int) model.Beneficiary {
	b := model.Beneficiary{
		ID:            first(rec, beneficiaryIDKeys...),
		Name:          first(rec, personNameKeys...),
		WalletAddress: DisplayAddress(first(rec, addressKeys...)),
		ResolvedName:  first(rec, resolvedNameKeys...),
		Phone:         first(rec, "phone"),
		Email:         first(rec, "email"),
		Relationship:  first(rec, "relationship"),
	}
	if b.ID == "" {
		b.ID = fmt.Sprintf("beneficiary-%d", position)
	}
	return b
}

// NormalizeAllocation resolves aliases for one allocation row.
func NormalizeAllocation(rec Record) model.Allocation {
	alloc := model.Allocation{
		AssetID:       first(rec, allocAssetKeys...),
		BeneficiaryID: first(rec, allocBenefKeys...),
		Kind:          allocationKind(rec),
	}

	valueKeys := []string{"percentage", "value", "amount"}
	if alloc.Kind == model.Amount {
		valueKeys = []string{"amount", "value", "percentage"}
	}
	alloc.ValueText = first(rec, valueKeys...)
	if alloc.ValueText == "" {
		alloc.ValueText = "0"
	}
	if v, err := strconv.ParseFloat(alloc.ValueText, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		alloc.Value = v
	}
	return alloc
}

// DisplayAddress renders EVM addresses in EIP-55 checksum form and returns
// other address formats trimmed but otherwise unchanged.
func DisplayAddress(addr string) string {
	addr = strings.TrimSpace(addr)
	if strings.HasPrefix(addr, "0x") && common.IsHexAddress(addr) {
		return common.HexToAddress(addr).Hex()
	}
	return addr
}

func assetKind(v string) model.Kind {
	if nonFungibleKinds[strings.ToLower(strings.TrimSpace(v))] {
		return model.NonFungible
	}
	return model.Fungible
}

func allocationKind(rec Record) model.AllocationKind {
	switch strings.ToLower(first(rec, allocKindKeys...)) {
	case "amount", "fixed":
		return model.Amount
	case "percentage", "percent", "%":
		return model.Percentage
	}
	if first(rec, "percentage") == "" && first(rec, "amount") != "" {
		return model.Amount
	}
	return model.Percentage
}

// first returns the first alias with a non-empty value, as a string.
// Dotted keys descend into nested maps ("metadata.image").
func first(rec Record, keys ...string) string {
	for _, key := range keys {
		v, ok := lookup(rec, key)
		if !ok {
			continue
		}
		if s := strings.TrimSpace(stringify(v)); s != "" {
			return s
		}
	}
	return ""
}

func lookup(rec Record, key string) (any, bool) {
	if rec == nil {
		return nil, false
	}
	head, rest, nested := strings.Cut(key, ".")
	v, ok := rec[head]
	if !ok || v == nil {
		return nil, false
	}
	if !nested {
		return v, true
	}
	switch child := v.(type) {
	case map[string]any:
		return lookup(child, rest)
	case map[any]any:
		conv := make(map[string]any, len(child))
		for k, cv := range child {
			conv[fmt.Sprint(k)] = cv
		}
		return lookup(conv, rest)
	}
	return nil, false
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case json.Number:
		return t.String()
	case fmt.Stringer:
		return t.String()
	case map[string]any, map[any]any, []any:
		return ""
	}
	return fmt.Sprint(v)
}

// ByDisplayAddress re-keys an address-keyed map by DisplayAddress so
// lowercase EVM keys match checksummed addresses.
func ByDisplayAddress(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[DisplayAddress(k)] = v
	}
	return out
}
