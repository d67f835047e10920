// Package graph assembles the output entities of a conversion.
//
// Entities come from a fixed set of kinds (see EntityKind); source-specific
// type labels such as deed or event types are resolved through a
// TypeRegistry and never become new kinds at runtime. A Batch collects the
// nodes and relationships of one conversion unit and can be validated as a
// whole before it is serialized:
//
//	res, err := builder.Build(ctx, root)
//	if err != nil {
//	    return err
//	}
//	batch, err := graph.Assemble(res)
//	if err != nil {
//	    return err
//	}
//	for _, n := range batch.NodesOfKind(graph.KindInventoryBook) {
//	    fmt.Println(n.ID)
//	}
package graph
