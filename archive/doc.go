// Package archive builds the concordances of an archival description tree.
//
// An archival root (a fonds) holds nested collection-level units whose
// leaves are individual books or files. Build walks the tree once, assigns
// every node its index and physical locator, aggregates each collection's
// file-level descendants and registers every file under the root's
// collection code:
//
//	b, err := archive.NewBuilder(archive.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	res, err := b.Build(ctx, root)
//	if err != nil {
//	    return err
//	}
//	loc, _ := res.Resolver().Resolve(concordance.Reference{Collection: "5075", Inventory: "1234"})
//
// Local codes are expected to be unique under a root. The source archive
// has one root where they are not; codes repeating there are tolerated and
// the later node is left anonymous. Repetition anywhere else is an error.
package archive
