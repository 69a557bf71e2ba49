package helpers

import "github.com/hashicorp/go-multierror"

// FoldErrors collects every non-nil error into a single multierror value.
func FoldErrors(errs []error) error {
	var err error
	for _, e := range errs {
		if e == nil {
			continue
		}
		err = multierror.Append(err, e)
	}
	return err
}
