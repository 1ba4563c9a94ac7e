package netif

import (
	"strings"

	"grimm.is/pflask/internal/errors"
)

// ParseSpec decodes a netif spec string:
//
//	<host-if>,<name>           move host-if into the namespace as name
//	macvlan,<master>,<name>    create a macvlan on master
//	veth,<host-end>,<name>     create a veth pair
//
// The first token is checked against exists before the keywords, so a host
// interface literally called "veth" is moved. Extra tokens are ignored.
func ParseSpec(spec string, exists func(name string) bool) (Request, error) {
	tokens := strings.Split(spec, ",")

	switch {
	case tokens[0] != "" && exists != nil && exists(tokens[0]):
		if len(tokens) < 2 {
			return Request{}, invalidSpec(spec, "missing target name")
		}
		return specRequest(spec, KindMove, tokens[0], tokens[1])
	case tokens[0] == "macvlan":
		if len(tokens) < 3 {
			return Request{}, invalidSpec(spec, "expected macvlan,<master>,<name>")
		}
		return specRequest(spec, KindMacvlan, tokens[1], tokens[2])
	case tokens[0] == "veth":
		if len(tokens) < 3 {
			return Request{}, invalidSpec(spec, "expected veth,<host-end>,<name>")
		}
		return specRequest(spec, KindVeth, tokens[1], tokens[2])
	default:
		return Request{}, invalidSpec(spec, "no such interface and not a known keyword")
	}
}

func specRequest(spec string, kind Kind, source, target string) (Request, error) {
	req, err := NewRequest(kind, source, target)
	if err != nil {
		return Request{}, errors.Attr(errors.Wrapf(err, errors.KindValidation, "invalid netif spec %q", spec), "spec", spec)
	}
	return req, nil
}

func invalidSpec(spec, reason string) error {
	return errors.Attr(errors.Errorf(errors.KindValidation, "invalid netif spec %q: %s", spec, reason), "spec", spec)
}

// AddSpec parses spec and registers the result.
func (r *Registry) AddSpec(spec string, exists func(name string) bool) error {
	req, err := ParseSpec(spec, exists)
	if err != nil {
		return err
	}
	return r.Add(req)
}
