// Package docker attributes listening sockets published by the Docker
// daemon to their containers. The daemon's proxy processes own the
// sockets, so the ss owner info alone names docker-proxy rather than the
// workload; mapping the published host port back to its container gives
// the row a meaningful label.
package docker

import (
	"context"
	"fmt"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
)

// ContainerBinding maps a published host port to its container.
type ContainerBinding struct {
	Name          string // container name, leading "/" stripped
	Image         string
	HostPort      int
	ContainerPort int
	Protocol      string // "tcp" or "udp"
}

// Resolver resolves published host ports to container bindings.
type Resolver interface {
	Resolve(ctx context.Context) (map[int]ContainerBinding, error)
}

// api is the subset of the Docker client used here (for testing).
type api interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]container.Summary, error)
	Close() error
}

type daemonResolver struct {
	newClient func() (api, error)
}

// NewResolver returns a Resolver backed by the Docker Engine API.
func NewResolver() Resolver {
	return &daemonResolver{
		newClient: func() (api, error) {
			return client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
		},
	}
}

// Resolve queries running containers and builds a host-port map. An
// absent or unreachable daemon yields an empty map, not an error.
func (r *daemonResolver) Resolve(ctx context.Context) (map[int]ContainerBinding, error) {
	cli, err := r.newClient()
	if err != nil {
		return map[int]ContainerBinding{}, nil
	}
	defer func() { _ = cli.Close() }()

	containers, err := cli.ContainerList(ctx, container.ListOptions{})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return map[int]ContainerBinding{}, nil
	}

	bindings := make(map[int]ContainerBinding)
	for _, c := range containers {
		name := containerName(c.Names)
		for _, p := range c.Ports {
			if p.PublicPort == 0 {
				continue // no host binding
			}
			bindings[int(p.PublicPort)] = ContainerBinding{
				Name:          name,
				Image:         c.Image,
				HostPort:      int(p.PublicPort),
				ContainerPort: int(p.PrivatePort),
				Protocol:      p.Type,
			}
		}
	}
	return bindings, nil
}

// containerName strips the leading "/" the API puts on the first name.
func containerName(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return strings.TrimPrefix(names[0], "/")
}

// IsProxyProcess reports whether a process name belongs to the Docker
// machinery that fronts container sockets on the host.
func IsProxyProcess(name string) bool {
	switch strings.ToLower(name) {
	case "docker-proxy", "dockerd", "containerd", "com.docker.backend", "com.docker.vpnkit":
		return true
	}
	return false
}

// Annotation renders a binding for the Path column, e.g.
// "nginx-proxy (nginx:latest) 8080→80".
func Annotation(b ContainerBinding) string {
	return fmt.Sprintf("%s (%s) %d→%d", b.Name, b.Image, b.HostPort, b.ContainerPort)
}
