package server

import (
	"colorchanger/internal/db"
	"colorchanger/internal/dom"
	"colorchanger/internal/metrics"
	"colorchanger/internal/pages"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Server struct {
	Pages       *pages.Store
	Tmpl        *template.Template
	Metrics     *metrics.Metrics
	DB          *db.DB             // nil if no database configured
	ClickBuffer chan db.ClickEvent // nil if no database configured
}

type pageView struct {
	Code       string
	ControlID  string
	Background string
}

// pageFromPath resolves the {code} path value.
func (s *Server) pageFromPath(r *http.Request) *pages.Page {
	return s.Pages.Get(pages.NormalizeCode(r.PathValue("code")))
}

// pageFromCookie resolves the current page from the page_code cookie.
func (s *Server) pageFromCookie(r *http.Request) *pages.Page {
	cookie, err := r.Cookie("page_code")
	if err != nil {
		return nil
	}
	return s.Pages.Get(cookie.Value)
}

func setPageCookie(w http.ResponseWriter, code string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "page_code",
		Value:    code,
		Path:     "/",
		HttpOnly: true,
	})
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if page := s.pageFromCookie(r); page != nil {
		http.Redirect(w, r, "/page/"+page.Code, http.StatusSeeOther)
		return
	}
	if err := s.Tmpl.ExecuteTemplate(w, "home", nil); err != nil {
		log.Println(err)
		http.Error(w, "Error rendering home page", http.StatusInternalServerError)
	}
}

func (s *Server) handleCreatePage(w http.ResponseWriter, r *http.Request) {
	ownerID := uuid.New().String()
	page, err := s.Pages.Create(ownerID)
	if err != nil {
		log.Println(err)
		http.Error(w, "Failed to create page", http.StatusInternalServerError)
		return
	}
	s.Metrics.ActivePages.Set(float64(s.Pages.Len()))

	if s.DB != nil {
		if err := s.DB.InsertPage(page.ID, page.Code, page.OwnerID, page.CreatedAt); err != nil {
			log.Printf("[DB] InsertPage error: %v\n", err)
		}
	}

	setPageCookie(w, page.Code)
	log.Printf("[Server] Created page %s\n", page.Code)
	http.Redirect(w, r, "/page/"+page.Code, http.StatusSeeOther)
}

func (s *Server) handleJoinPage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	code := pages.NormalizeCode(r.FormValue("code"))
	page := s.Pages.Get(code)
	if page == nil {
		if err := s.Tmpl.ExecuteTemplate(w, "home", map[string]string{"Error": "Page not found"}); err != nil {
			log.Println(err)
		}
		return
	}

	setPageCookie(w, page.Code)
	http.Redirect(w, r, "/page/"+page.Code, http.StatusSeeOther)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page := s.pageFromPath(r)
	if page == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	setPageCookie(w, page.Code)

	data := pageView{
		Code:       page.Code,
		ControlID:  page.Changer.ControlID(),
		Background: page.Background(),
	}
	if err := s.Tmpl.ExecuteTemplate(w, "page", data); err != nil {
		log.Println(err)
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
	}
}

// click dispatches one click on page and queues the click record. It returns
// the background this click left and the dispatch error unchanged.
func (s *Server) click(page *pages.Page, id string) (string, error) {
	clickedAt := time.Now()
	background, err := page.Click(id)

	var nf *dom.ElementNotFoundError
	if errors.As(err, &nf) && nf.ID == id {
		// nothing was clicked, nothing to record
		return "", err
	}
	if err != nil {
		log.Printf("[Server] Click on %s/%s: %v\n", page.Code, id, err)
	}
	if id == page.Changer.ControlID() {
		s.recordClick(db.ClickEvent{
			PageID:    page.ID,
			ControlID: id,
			Applied:   err == nil,
			ClickedAt: clickedAt,
		})
	}
	return background, err
}

func (s *Server) recordClick(ev db.ClickEvent) {
	if s.ClickBuffer == nil {
		return
	}
	select {
	case s.ClickBuffer <- ev:
	default:
		s.Metrics.DroppedClicks.Inc()
		log.Println("[DB] Click buffer full, dropping event")
	}
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	page := s.pageFromPath(r)
	if page == nil {
		http.Error(w, "Page not found", http.StatusNotFound)
		return
	}

	id := r.PathValue("id")
	background, err := s.click(page, id)
	if err != nil {
		if errors.Is(err, dom.ErrElementNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "Click failed", http.StatusInternalServerError)
		return
	}

	if id != page.Changer.ControlID() {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, background)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	page := s.pageFromPath(r)
	if page == nil {
		http.Error(w, "Page not found", http.StatusNotFound)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	msgChan := page.Broadcaster.Subscribe()
	defer page.Broadcaster.Unsubscribe(msgChan)
	w.WriteHeader(http.StatusOK)
	flusher.Flush()
	s.Metrics.SSEClients.Inc()
	defer s.Metrics.SSEClients.Dec()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-msgChan:
			if !ok {
				// page closed
				return
			}
			fmt.Fprintf(w, "event: %s\n", msg.Event)
			for _, line := range strings.Split(msg.Data, "\n") {
				fmt.Fprintf(w, "data: %s\n", line)
			}
			fmt.Fprint(w, "\n")
			flusher.Flush()
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	status := "ok"
	if s.DB != nil {
		if err := s.DB.Ping(); err != nil {
			status = "db_error"
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintf(w, `{"status":%q,"error":%q}`, status, err.Error())
			return
		}
	}
	fmt.Fprintf(w, `{"status":%q}`, status)
}
