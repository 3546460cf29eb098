// Package lastwish renders digital-asset inheritance instructions as PDF.
//
// # Quick Start
//
// Create a generator, generate from an input, and write the bytes:
//
//	gen, err := lastwish.NewGenerator()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pdf, err := gen.Generate(ctx, lastwish.Input{
//	    Owner:  lastwish.Person{Name: "Ada Lovelace"},
//	    Assets: []lastwish.Record{{"chain": "ethereum", "symbol": "ETH", "balance": "1.5"}},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("instructions.pdf", pdf, 0o600)
//
// # Generation Pipeline
//
// Generate runs these stages in order:
//
//  1. Normalization of raw asset, beneficiary and allocation rows
//  2. Grouping into wallet, chain and asset order
//  3. Bounded-concurrency artwork prefetch (ipfs://, ar:// and http(s))
//  4. Composition of the fixed section sequence with explicit page breaks
//  5. Serialization to a single US Letter PDF
//
// Non-fungible assets are never shown as partially allocated. A failed
// artwork download only replaces the thumbnail with a placeholder.
//
// # Configuration
//
// Use functional options to customize the generator:
//
//	gen, err := lastwish.NewGenerator(
//	    lastwish.WithDateFormat("iso"),
//	    lastwish.WithImageTimeout(5 * time.Second),
//	    lastwish.WithAssetPath("/path/to/legal/overrides"),
//	)
//
// Input bundles in YAML or JSON are read with LoadBundle.
//
// # Concurrency
//
// A Generator is safe for concurrent use. GeneratorPool bounds how many
// documents are generated at once; ResolvePoolSize picks a size from
// GOMAXPROCS.
package lastwish
