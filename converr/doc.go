// Package converr defines the error taxonomy shared by the conversion core.
//
// Errors fall into two groups:
//
//   - Fatal: malformed dates, structural tree errors, undeclared duplicate
//     codes and invalid configuration. These are returned immediately and are
//     never retried inside the core.
//   - Soft: missing locators. A concordance lookup miss is expected at
//     conversion time; callers substitute a placeholder and continue.
//
// Use errors.Is with the sentinels, or IsFatal to decide between aborting a
// record and applying the fallback:
//
//	loc, err := resolver.Resolve(ref)
//	if converr.IsFatal(err) {
//	    return err
//	}
package converr
