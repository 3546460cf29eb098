// Package grouping partitions normalized assets into wallet and chain groups
// with a fixed, reproducible order.
package grouping

import (
	"cmp"
	"slices"

	"github.com/ArtieFishal/lastwish/internal/model"
	"github.com/ArtieFishal/lastwish/internal/normalize"
)

// PaletteSize is the number of distinct wallet colors.
const PaletteSize = 10

// RGB is an 8-bit color.
type RGB struct {
	R, G, B int
}

// Palette holds the wallet colors, indexed by ColorIndex.
var Palette = [PaletteSize]RGB{
	{59, 130, 246}, // blue
	{16, 185, 129}, // emerald
	{245, 158, 11}, // amber
	{139, 92, 246}, // violet
	{236, 72, 153}, // pink
	{20, 184, 166}, // teal
	{239, 68, 68},  // red
	{99, 102, 241}, // indigo
	{132, 204, 22}, // lime
	{234, 88, 12},  // orange
}

// ColorIndex maps a wallet position to a palette slot.
func ColorIndex(position, paletteSize int) int {
	if paletteSize <= 0 {
		return 0
	}
	idx := position % paletteSize
	if idx < 0 {
		idx += paletteSize
	}
	return idx
}

// Color returns the palette color for a wallet position.
func Color(position int) RGB {
	return Palette[ColorIndex(position, PaletteSize)]
}

// Group builds the wallet -> chain -> asset tree.
//
// providers and names are keyed by wallet address; keys are matched after
// address normalization so lowercase EVM keys find checksummed wallets.
func Group(assets []model.Asset, providers, names map[string]string) []model.WalletGroup {
	providerOf := normalize.ByDisplayAddress(providers)
	nameOf := normalize.ByDisplayAddress(names)

	type bucket struct {
		group  model.WalletGroup
		chains map[string][]model.Asset
	}
	buckets := make(map[string]*bucket)

	for _, a := range assets {
		b, ok := buckets[a.WalletAddress]
		if !ok {
			b = &bucket{
				group: model.WalletGroup{
					Address:      a.WalletAddress,
					ResolvedName: nameOf[a.WalletAddress],
				},
				chains: make(map[string][]model.Asset),
			}
			buckets[a.WalletAddress] = b
		}
		if b.group.Provider == "" {
			b.group.Provider = a.Provider
		}
		b.chains[a.Chain] = append(b.chains[a.Chain], a)
	}

	wallets := make([]model.WalletGroup, 0, len(buckets))
	for addr, b := range buckets {
		if p := providerOf[addr]; p != "" {
			b.group.Provider = p
		}
		if b.group.Provider == "" {
			b.group.Provider = model.UnknownProvider
		}
		for chain, chainAssets := range b.chains {
			SortAssets(chainAssets)
			b.group.Chains = append(b.group.Chains, model.ChainGroup{Chain: chain, Assets: chainAssets})
		}
		slices.SortFunc(b.group.Chains, func(x, y model.ChainGroup) int {
			return cmp.Compare(x.Chain, y.Chain)
		})
		wallets = append(wallets, b.group)
	}

	slices.SortFunc(wallets, func(x, y model.WalletGroup) int {
		return cmp.Or(
			cmp.Compare(x.Provider, y.Provider),
			cmp.Compare(x.Address, y.Address),
		)
	})
	for i := range wallets {
		wallets[i].ColorIndex = ColorIndex(i, PaletteSize)
	}
	return wallets
}

// SortAssets orders assets by (symbol, name) with the id as tie-breaker.
func SortAssets(assets []model.Asset) {
	slices.SortStableFunc(assets, func(x, y model.Asset) int {
		return cmp.Or(
			cmp.Compare(x.Symbol, y.Symbol),
			cmp.Compare(x.Name, y.Name),
			cmp.Compare(x.ID, y.ID),
		)
	})
}

// ByChain flattens assets into chain-major order: chains ascending, then
// assets by (symbol, name), then by wallet address.
func ByChain(assets []model.Asset) []model.ChainGroup {
	chains := make(map[string][]model.Asset)
	for _, a := range assets {
		chains[a.Chain] = append(chains[a.Chain], a)
	}

	out := make([]model.ChainGroup, 0, len(chains))
	for chain, list := range chains {
		slices.SortStableFunc(list, func(x, y model.Asset) int {
			return cmp.Or(
				cmp.Compare(x.Symbol, y.Symbol),
				cmp.Compare(x.Name, y.Name),
				cmp.Compare(x.WalletAddress, y.WalletAddress),
				cmp.Compare(x.ID, y.ID),
			)
		})
		out = append(out, model.ChainGroup{Chain: chain, Assets: list})
	}
	slices.SortFunc(out, func(x, y model.ChainGroup) int {
		return cmp.Compare(x.Chain, y.Chain)
	})
	return out
}
