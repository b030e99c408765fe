// Copyright 2026 The Locate Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/clusterkit/locate/cluster"
	"github.com/clusterkit/locate/locator"
	"github.com/clusterkit/locate/metrics"
	"github.com/clusterkit/locate/node"
	"github.com/clusterkit/locate/request"
	"github.com/clusterkit/locate/retry"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

const envPrefix = "LOCATESIM"

type simulation struct {
	Topology       string
	Bucket         string
	Service        cluster.ServiceType
	Strategy       string
	Requests       int
	Concurrency    int
	InitialCounter *int64
	Retry          retry.Config
	Logger         logrus.FieldLogger
}

type report struct {
	Delivered map[string]int64
	Failed    map[string]int
	Order     []string
	Registry  *prometheus.Registry
}

func newRunCmd(ctx context.Context) *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Locate a batch of requests and print the resulting distribution",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sim, err := loadSimulation(v, cmd.Flags().Changed("initial-counter"), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			result, err := simulate(ctx, sim)
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), result)
		},
	}
	flags := cmd.Flags()
	flags.StringP("config", "c", "", "Optional config file providing any of the flags below")
	flags.StringP("topology", "t", "", "Topology snapshot (YAML)")
	flags.StringP("bucket", "b", "", "Target bucket")
	flags.String("service", "view", "Service to locate: view, query, search, analytics or config")
	flags.String("strategy", "round-robin", "Selection strategy for services other than view: round-robin or random")
	flags.IntP("requests", "n", 1000, "Number of requests")
	flags.Int("concurrency", 8, "Number of concurrent callers")
	flags.Int64("initial-counter", 0, "Fixed initial round-robin counter; random when not given")
	flags.String("retry-strategy", "fail-fast", "Retry strategy: fail-fast or best-effort")
	flags.Duration("retry-timeout", 2*time.Second, "How long undeliverable requests are retried")
	flags.String("log-level", "warn", "Log level")
	flags.Bool("log-json", false, "Log as JSON")
	if err := v.BindPFlags(flags); err != nil {
		panic(err) //nolint:forbidigo // flags are static
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return cmd
}

// loadSimulation reads the optional config file and resolves every setting.
// The initial counter is fixed only when a flag, the config file or the
// environment provides it; otherwise the locator picks a random start.
func loadSimulation(v *viper.Viper, counterFlagSet bool, logOutput io.Writer) (simulation, error) {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return simulation{}, errors.Wrapf(err, "read config %s", path)
		}
	}
	counterSet := counterFlagSet ||
		v.InConfig("initial-counter") ||
		os.Getenv(envPrefix+"_INITIAL_COUNTER") != ""

	logger := logrus.New()
	logger.SetOutput(logOutput)
	level, err := logrus.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return simulation{}, err
	}
	logger.SetLevel(level)
	if v.GetBool("log-json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	service, err := cluster.ParseServiceType(v.GetString("service"))
	if err != nil {
		return simulation{}, err
	}
	retryConfig, err := retry.LoadConfig(envPrefix + "_RETRY")
	if err != nil {
		return simulation{}, err
	}
	retryConfig.Strategy = v.GetString("retry-strategy")
	retryConfig.Timeout = v.GetDuration("retry-timeout")

	sim := simulation{
		Topology:    v.GetString("topology"),
		Bucket:      v.GetString("bucket"),
		Service:     service,
		Strategy:    v.GetString("strategy"),
		Requests:    v.GetInt("requests"),
		Concurrency: v.GetInt("concurrency"),
		Retry:       retryConfig,
		Logger:      logger,
	}
	if counterSet {
		counter := v.GetInt64("initial-counter")
		sim.InitialCounter = &counter
	}
	switch {
	case sim.Topology == "":
		return simulation{}, errors.New("--topology is required")
	case sim.Bucket == "":
		return simulation{}, errors.New("--bucket is required")
	case sim.Requests < 1 || sim.Concurrency < 1:
		return simulation{}, errors.New("--requests and --concurrency must be positive")
	}
	return sim, nil
}

func simulate(ctx context.Context, sim simulation) (*report, error) {
	file, err := os.Open(sim.Topology)
	if err != nil {
		return nil, errors.Wrap(err, "open topology")
	}
	defer file.Close()
	snapshot, err := cluster.LoadYAML(file)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(registry)
	if err != nil {
		return nil, err
	}
	loc, err := newLocator(sim, collector)
	if err != nil {
		return nil, err
	}

	infos := snapshot.Nodes()
	simNodes := make([]*simNode, len(infos))
	nodeList := make([]node.Node, len(infos))
	for i, info := range infos {
		simNodes[i] = newSimNode(info)
		nodeList[i] = simNodes[i]
	}
	nodes := node.FromSlice(nodeList)

	retryOpts, err := sim.Retry.Options()
	if err != nil {
		return nil, err
	}
	var helper *retry.Helper
	helper = retry.NewHelper(func(req request.Request) {
		loc.LocateAndDispatch(req, nodes, snapshot, helper)
	}, append(retryOpts, retry.WithLogger(sim.Logger), retry.WithObserver(collector))...)

	reqs := make([]*request.Base, sim.Requests)
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(sim.Concurrency)
	for i := range reqs {
		req := request.New(sim.Bucket)
		reqs[i] = req
		group.Go(func() error {
			loc.LocateAndDispatch(req, nodes, snapshot, helper)
			select {
			case <-req.Done():
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	result := &report{
		Delivered: make(map[string]int64, len(simNodes)),
		Failed:    map[string]int{},
		Registry:  registry,
	}
	for _, n := range simNodes {
		result.Delivered[n.addr] = n.delivered.Load()
		result.Order = append(result.Order, n.addr)
	}
	for _, req := range reqs {
		if _, err := req.Result(); err != nil {
			result.Failed[failureKind(err)]++
		}
	}
	return result, nil
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, locator.ErrServiceNotAvailable):
		return "service not available"
	case errors.Is(err, retry.ErrRequestCancelled):
		return "cancelled"
	default:
		return err.Error()
	}
}

func newLocator(sim simulation, collector *metrics.Collector) (locator.Locator, error) {
	opts := []locator.Option{
		locator.WithLogger(sim.Logger),
		locator.WithObserver(collector),
	}
	if sim.InitialCounter != nil {
		opts = append(opts, locator.WithInitialCounter(*sim.InitialCounter))
	}
	switch {
	case sim.Service == cluster.ServiceView:
		return locator.NewView(opts...), nil
	case sim.Strategy == "round-robin":
		return locator.NewService(sim.Service, opts...), nil
	case sim.Strategy == "random":
		return locator.NewRandom(sim.Service, opts...), nil
	default:
		return nil, errors.Errorf("unknown strategy %q", sim.Strategy)
	}
}

func printReport(out io.Writer, result *report) error {
	if _, err := fmt.Fprintln(out, "delivered:"); err != nil {
		return err
	}
	for _, addr := range result.Order {
		if _, err := fmt.Fprintf(out, "  %-24s %d\n", addr, result.Delivered[addr]); err != nil {
			return err
		}
	}
	if len(result.Failed) > 0 {
		if _, err := fmt.Fprintln(out, "failed:"); err != nil {
			return err
		}
		kinds := make([]string, 0, len(result.Failed))
		for kind := range result.Failed {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)
		for _, kind := range kinds {
			if _, err := fmt.Fprintf(out, "  %d x %s\n", result.Failed[kind], kind); err != nil {
				return err
			}
		}
	}
	families, err := result.Registry.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(out, family); err != nil {
			return err
		}
	}
	return nil
}

// simNode stands in for a real node: it answers every request at once.
type simNode struct {
	addr      string
	services  map[cluster.ServiceType]struct{}
	delivered atomic.Int64
}

func newSimNode(info cluster.NodeInfo) *simNode {
	services := make(map[cluster.ServiceType]struct{}, len(info.Services))
	for _, svc := range info.Services {
		services[svc] = struct{}{}
	}
	return &simNode{addr: info.Address, services: services}
}

func (n *simNode) Address() string { return n.addr }

func (n *simNode) ServiceEnabled(service cluster.ServiceType) bool {
	_, ok := n.services[service]
	return ok
}

func (n *simNode) Send(req request.Request) {
	n.delivered.Add(1)
	req.Succeed(n.addr)
}
