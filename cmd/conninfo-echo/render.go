package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/logrusorgru/aurora/v3"

	"github.com/abczzz13/conninfo"
)

type renderer interface {
	contentType() string
	info(w io.Writer, info conninfo.Info) error
	peer(w io.Writer, addr conninfo.PeerAddr) error
}

type textRenderer struct{}
type jsonRenderer struct{}

func (textRenderer) contentType() string { return "text/plain; charset=utf-8" }

func (textRenderer) info(w io.Writer, info conninfo.Info) error {
	p := info.Provenance()
	realIP, _ := info.RealIPRemoteAddr()
	remoteAddr, _ := info.RemoteAddr()

	_, err := fmt.Fprintf(w,
		"scheme:      %s (%s)\nhost:        %s (%s)\nreal ip:     %s (%s)\nremote addr: %s\n",
		info.Scheme(), p.Scheme,
		info.Host(), p.Host,
		orNone(realIP), orNone(p.RealIP),
		orNone(remoteAddr),
	)
	return err
}

func (textRenderer) peer(w io.Writer, addr conninfo.PeerAddr) error {
	_, err := fmt.Fprintln(w, addr.String())
	return err
}

type infoJSON struct {
	Scheme     string              `json:"scheme"`
	Host       string              `json:"host"`
	RealIP     string              `json:"real_ip,omitempty"`
	RemoteAddr string              `json:"remote_addr,omitempty"`
	Provenance conninfo.Provenance `json:"provenance"`
}

type peerJSON struct {
	Addr string `json:"addr"`
	Port uint16 `json:"port"`
}

func (jsonRenderer) contentType() string { return "application/json" }

func (jsonRenderer) info(w io.Writer, info conninfo.Info) error {
	realIP, _ := info.RealIPRemoteAddr()
	remoteAddr, _ := info.RemoteAddr()

	return json.NewEncoder(w).Encode(infoJSON{
		Scheme:     info.Scheme(),
		Host:       info.Host(),
		RealIP:     realIP,
		RemoteAddr: remoteAddr,
		Provenance: info.Provenance(),
	})
}

func (jsonRenderer) peer(w io.Writer, addr conninfo.PeerAddr) error {
	return json.NewEncoder(w).Encode(peerJSON{
		Addr: addr.Addr().String(),
		Port: addr.Port(),
	})
}

// console prints one line per echoed request. Colour is decided by the
// Aurora it is given.
type console struct {
	mu  sync.Mutex
	out io.Writer
	au  aurora.Aurora
	n   uint64
}

const (
	verbStyle aurora.Color = aurora.MagentaFg
	nounStyle aurora.Color = aurora.CyanFg
	addrStyle aurora.Color = aurora.BlueFg
	infoStyle aurora.Color = aurora.BlackFg | aurora.BrightFg
)

func newConsole(out io.Writer, au aurora.Aurora) *console {
	return &console{out: out, au: au}
}

func (c *console) request(r *http.Request, info conninfo.Info) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.n++
	realIP, _ := info.RealIPRemoteAddr()
	p := info.Provenance()

	fmt.Fprintf(c.out, "%s %s %s://%s%s from %s %s\n",
		c.au.Colorize(fmt.Sprintf("#%d", c.n), infoStyle),
		c.au.Colorize(r.Method, verbStyle),
		c.au.Colorize(info.Scheme(), nounStyle),
		c.au.Colorize(info.Host(), nounStyle),
		r.URL.Path,
		c.au.Colorize(orNone(realIP), addrStyle),
		c.au.Colorize(fmt.Sprintf("[%s/%s/%s]", p.Scheme, p.Host, orNone(p.RealIP)), infoStyle),
	)
}

func orNone(s string) string {
	if s == "" {
		return "<none>"
	}
	return s
}
