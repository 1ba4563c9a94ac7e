// Package rtnl builds and exchanges rtnetlink link messages.
//
// # Overview
//
// A [Message] owns one fixed-capacity buffer holding a netlink header, a
// fixed payload (the interface-info header for link messages) and a stream
// of type-length-value attributes. Attributes may be nested to any depth
// with [Message.StartNested] and [Message.EndNested].
//
// A [Conn] carries exactly one request and one reply at a time. Every
// request uses sequence number 1, so a second request must never be sent
// before the reply to the first has been received.
//
// # Example
//
//	sock, err := rtnl.Dial()
//	if err != nil {
//	    return err
//	}
//	defer sock.Close()
//
//	ifi := nl.NewIfInfomsg(unix.AF_UNSPEC)
//	ifi.Index = 1
//	ifi.Flags = unix.IFF_UP
//	ifi.Change = unix.IFF_UP
//	reply, err := rtnl.RoundTrip(sock, rtnl.NewLinkMessage(0, ifi))
//	if err != nil {
//	    return err
//	}
//	return reply.Err()
//
// This package only builds on Linux.
package rtnl
