package analytics

import (
	"math"
	"sort"

	"github.com/ignite/campaign-tracker/internal/domain"
)

// Aggregate joins delivery events to sent messages by message id and derives
// per-campaign and global counters and rates. It runs in O(n+m) over the two
// inputs and does not depend on their ordering.
//
// Attribution rules:
//   - a campaign's Sent is the count of its messages, independent of events;
//   - open/click/bounce events whose message id resolves to a message are
//     counted against that message's campaign (delivered and any other kinds
//     are not attributed per-campaign);
//   - events with an unknown message id are skipped per-campaign but still
//     counted in the global totals, which count all events unconditionally.
func Aggregate(messages []domain.SentMessage, events []domain.DeliveryEvent) domain.GlobalStats {
	campaignByMessage := make(map[string]string, len(messages))
	acc := make(map[string]*domain.CampaignStats)

	for _, m := range messages {
		// First message wins on a duplicated message id; collisions are
		// undefined behavior and only the join key is affected.
		if _, ok := campaignByMessage[m.MessageID]; !ok {
			campaignByMessage[m.MessageID] = m.CampaignID
		}
		cs, ok := acc[m.CampaignID]
		if !ok {
			cs = &domain.CampaignStats{CampaignID: m.CampaignID}
			acc[m.CampaignID] = cs
		}
		cs.Sent++
	}

	stats := domain.GlobalStats{
		TotalSent:     len(messages),
		CampaignStats: make([]domain.CampaignStats, 0, len(acc)),
	}

	for _, e := range events {
		switch e.Event {
		case domain.EventOpen:
			stats.TotalOpens++
		case domain.EventClick:
			stats.TotalClicks++
		case domain.EventBounce:
			stats.TotalBounces++
		case domain.EventDelivered:
			stats.TotalDelivered++
		}

		campaignID, ok := campaignByMessage[e.MessageID]
		if !ok {
			continue
		}
		cs := acc[campaignID]
		switch e.Event {
		case domain.EventOpen:
			cs.Opens++
			cs.UniqueOpens++
		case domain.EventClick:
			cs.Clicks++
			cs.UniqueClicks++
		case domain.EventBounce:
			cs.Bounces++
		}
	}

	for _, cs := range acc {
		cs.UniqueOpenRate = rate(cs.UniqueOpens, cs.Sent)
		cs.UniqueClickRate = rate(cs.UniqueClicks, cs.Sent)
		cs.BounceRate = rate(cs.Bounces, cs.Sent)
		stats.CampaignStats = append(stats.CampaignStats, *cs)
	}
	sort.Slice(stats.CampaignStats, func(i, j int) bool {
		return stats.CampaignStats[i].CampaignID < stats.CampaignStats[j].CampaignID
	})

	stats.OpenRate = rate(stats.TotalOpens, stats.TotalSent)
	stats.ClickRate = rate(stats.TotalClicks, stats.TotalSent)
	stats.BounceRate = rate(stats.TotalBounces, stats.TotalSent)

	return stats
}

// rate returns count/sent as a percentage rounded to 2 decimals, 0 when
// sent is 0. Rounding is half-away-from-zero via math.Round, pinned by tests.
func rate(count, sent int) float64 {
	if sent == 0 {
		return 0
	}
	return round2(float64(count) / float64(sent) * 100)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
