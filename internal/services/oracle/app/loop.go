package app

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	crapsv1 "github.com/louisbranch/crapshoot/api/craps/v1"
	"github.com/louisbranch/crapshoot/internal/platform/timeouts"
	oracledomain "github.com/louisbranch/crapshoot/internal/services/oracle/domain"
	"google.golang.org/grpc"
)

const (
	defaultPollInterval = 2 * time.Second
	pendingRollsFilter  = `phase = "ROLLING"`
	pendingRollsPage    = 50
)

type gameLister interface {
	ListGames(ctx context.Context, in *crapsv1.ListGamesRequest, opts ...grpc.CallOption) (*crapsv1.ListGamesResponse, error)
}

type rollDeliverer interface {
	Deliver(ctx context.Context, g *crapsv1.Game) (*crapsv1.Roll, error)
}

// Config controls the polling loop.
type Config struct {
	DeploymentID string
	PollInterval time.Duration
}

func (c Config) normalized() Config {
	c.DeploymentID = strings.TrimSpace(c.DeploymentID)
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	return c
}

// Loop polls for rolling games and answers each pending token once.
type Loop struct {
	games     gameLister
	deliverer rollDeliverer
	cfg       Config
	logf      func(string, ...any)

	// abandoned holds pending tokens that failed permanently so they are not
	// retried. Entries leave once their token is no longer pending.
	abandoned map[string]struct{}
}

// New creates a polling loop.
func New(games gameLister, deliverer rollDeliverer, cfg Config, logf func(string, ...any)) *Loop {
	if logf == nil {
		logf = log.Printf
	}
	return &Loop{
		games:     games,
		deliverer: deliverer,
		cfg:       cfg.normalized(),
		logf:      logf,
		abandoned: make(map[string]struct{}),
	}
}

// Run polls until ctx ends.
func (l *Loop) Run(ctx context.Context) error {
	if l == nil || l.games == nil || l.deliverer == nil {
		return errors.New("oracle loop is not configured")
	}
	if l.cfg.DeploymentID == "" {
		return errors.New("deployment id is required")
	}
	ticker := time.NewTicker(l.cfg.PollInterval)
	defer ticker.Stop()
	for {
		if _, err := l.PollOnce(ctx); err != nil && ctx.Err() == nil {
			l.logf("oracle poll: %v", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// PollOnce answers every rolling game of the deployment and returns how many
// deliveries were accepted.
func (l *Loop) PollOnce(ctx context.Context) (int, error) {
	delivered := 0
	pageToken := ""
	pending := make(map[string]struct{})
	for {
		listCtx, cancel := context.WithTimeout(ctx, timeouts.GRPCRequest)
		page, err := l.games.ListGames(listCtx, &crapsv1.ListGamesRequest{
			DeploymentID: l.cfg.DeploymentID,
			PageSize:     pendingRollsPage,
			PageToken:    pageToken,
			Filter:       pendingRollsFilter,
		})
		cancel()
		if err != nil {
			return delivered, err
		}
		for _, g := range page.Games {
			pending[g.GetPendingRollToken()] = struct{}{}
			if l.deliver(ctx, g) {
				delivered++
			}
		}
		if page.NextPageToken == "" {
			l.forgetResolved(pending)
			return delivered, nil
		}
		pageToken = page.NextPageToken
	}
}

func (l *Loop) deliver(ctx context.Context, g *crapsv1.Game) bool {
	token := g.GetPendingRollToken()
	if _, skip := l.abandoned[token]; skip || token == "" {
		return false
	}
	callCtx, cancel := context.WithTimeout(ctx, timeouts.GRPCRequest)
	defer cancel()
	roll, err := l.deliverer.Deliver(callCtx, g)
	if err != nil {
		if oracledomain.IsPermanent(err) {
			l.abandoned[token] = struct{}{}
			l.logf("oracle abandon game %s token %s: %v", g.GameID, token, err)
			return false
		}
		l.logf("oracle deliver game %s: %v", g.GameID, err)
		return false
	}
	if roll != nil {
		l.logf("oracle rolled %d+%d=%d for game %s: %s", roll.Die1, roll.Die2, roll.Sum, g.GameID, roll.Outcome)
	}
	return true
}

// forgetResolved drops abandoned tokens that no longer appear in a full scan
// of rolling games.
func (l *Loop) forgetResolved(pending map[string]struct{}) {
	for token := range l.abandoned {
		if _, ok := pending[token]; !ok {
			delete(l.abandoned, token)
		}
	}
}
