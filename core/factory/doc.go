// Package factory provides the registry that maps implementation
// identifiers to construction functions. Identifiers use the normalized
// slash-separated form ("clients/http"). Factories receive the resolved
// parameter map for the client plus the cache binding of the registry that
// requested the build, so a client can share the application cache without
// any ambient state.
//
// Example usage:
//
//	factory.Clients.Register("clients/file", func(bc factory.BuildContext) (any, error) {
//	    var c struct {
//	        Path string `json:"path"`
//	    }
//	    if err := factory.Decode(bc.Params, &c); err != nil {
//	        return nil, err
//	    }
//	    return os.Open(c.Path)
//	})
package factory
