package provisioning

import "fmt"

// ProvisioningError means no usable meeting link could be resolved. It is
// deliberately distinct from a booking conflict: the caller should fix their
// meeting settings, not pick another time.
type ProvisioningError struct {
	Provider string
	Message  string
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("provisioning failed for %s: %s", e.Provider, e.Message)
}

func newProvisioningError(provider, format string, args ...interface{}) *ProvisioningError {
	return &ProvisioningError{Provider: provider, Message: fmt.Sprintf(format, args...)}
}
