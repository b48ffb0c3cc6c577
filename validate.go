package epub

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate checks the structural invariants a Book must satisfy before
// assembly: a non-empty title, a non-empty identifier, at least one
// chapter, and image assets that carry data. Body-level invariants (markup
// well-formedness, dangling image references) are checked during document
// generation, where the offending chapter is known.
//
// All violations are reported as ErrInvalidBook.
func (b Book) Validate() error {
	err := validation.ValidateStruct(&b,
		validation.Field(&b.Title, validation.Required),
		validation.Field(&b.Identifier, validation.Required),
		validation.Field(&b.Chapters, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBook, err)
	}

	if b.Cover != nil {
		if err := b.Cover.validate(false); err != nil {
			return fmt.Errorf("%w: cover image: %v", ErrInvalidBook, err)
		}
	}

	for i, ch := range b.Chapters {
		for j, img := range ch.Images {
			if err := img.validate(true); err != nil {
				return fmt.Errorf("%w: chapter %d, image %d: %v", ErrInvalidBook, i+1, j+1, err)
			}
		}
	}

	return nil
}

// validate checks a single image asset. Inline images additionally need a
// Ref so they can be matched against chapter body references; the cover
// is located structurally and carries none.
func (img Image) validate(needRef bool) error {
	fields := []*validation.FieldRules{
		validation.Field(&img.Data, validation.Required),
	}
	if needRef {
		fields = append(fields, validation.Field(&img.Ref, validation.Required))
	}
	return validation.ValidateStruct(&img, fields...)
}
