// Package discriminator selects the schema a discriminator value names.
//
// A discriminator is bound to the oneOf (or anyOf) of the schema declaring
// it. A discriminator on a plain typed schema is the allOf inheritance
// pattern: the schemas it selects from are the component schemas whose
// allOf references it.
//
// Selection order:
//
//  1. the mapping entry for the value, resolved as a reference, or as a
//     schema name under #/components/schemas when it has no "/" or "#"
//  2. the member whose reference ends in the value
//     ("#/components/schemas/Dog" is selected by "Dog", "dog.yaml" by "dog")
//  3. with [WithFoldCase], the single member whose name matches ignoring case
//
// Anything else fails with *oaserrors.DiscriminatorError, which matches
// oaserrors.ErrUnknownDiscriminatorValue.
//
// # Usage
//
//	d, err := discriminator.New(refs)
//	if err != nil {
//	    return err
//	}
//	variant, err := d.ResolveVariant(petHandle, "dog")
//	if errors.Is(err, oaserrors.ErrUnknownDiscriminatorValue) {
//	    // report the value
//	}
package discriminator
