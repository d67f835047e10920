// Package concordance holds the lookup tables that link flat deed records to
// their place in the archival hierarchy.
//
// Every archival root yields two tables, one mapping to index locators and
// one mapping to physical locators, both keyed by (collection code, local
// code). Deed records only carry a collection code and an inventory number;
// a Resolver turns that pair into the locators of the containing book:
//
//	r := concordance.NewResolver(res.Index, res.Physical)
//	loc, err := r.Resolve(concordance.Reference{Collection: "5075", Inventory: "1234"})
//	if converr.IsFatal(err) {
//	    return err
//	}
//	// on a miss loc.Book is the placeholder and loc.Resolved is false
//
// Tables are filled by a single builder and frozen before they are handed
// out; frozen tables are read-only and need no synchronization.
package concordance
