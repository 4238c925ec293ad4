package server

import (
	"colorchanger/internal/analytics"
	"log"
	"net/http"
)

func (s *Server) handleAnalyticsDashboard(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "Analytics requires a database connection", http.StatusServiceUnavailable)
		return
	}

	q := analytics.NewQueries(s.DB)

	category := r.URL.Query().Get("category")
	if category == "" {
		category = "clicks"
	}

	data := struct {
		Summary     *analytics.Summary
		Category    string
		Leaderboard []analytics.LeaderboardEntry
	}{Category: category}

	summary, err := q.GetSummary()
	if err != nil {
		log.Printf("[Analytics] summary error: %v\n", err)
	}
	data.Summary = summary

	leaderboard, err := q.GetLeaderboard(category, 10)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	data.Leaderboard = leaderboard

	if err := s.Tmpl.ExecuteTemplate(w, "analytics", data); err != nil {
		log.Println(err)
		http.Error(w, "Error rendering analytics", http.StatusInternalServerError)
	}
}

func (s *Server) handleAnalyticsPage(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "Analytics requires a database connection", http.StatusServiceUnavailable)
		return
	}

	page := s.pageFromPath(r)
	if page == nil {
		http.Error(w, "Page not found", http.StatusNotFound)
		return
	}

	stats, err := analytics.NewQueries(s.DB).AwardMilestones(page.ID)
	if err != nil {
		log.Printf("[Analytics] page stats error: %v\n", err)
		http.Error(w, "Error loading page stats", http.StatusInternalServerError)
		return
	}

	if err := s.Tmpl.ExecuteTemplate(w, "analytics-page", stats); err != nil {
		log.Println(err)
		http.Error(w, "Error rendering analytics", http.StatusInternalServerError)
	}
}
