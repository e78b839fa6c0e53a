package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"feedloop/pkg/domain"
)

// refreshResponse is the JSON shape of a refresh cycle result
type refreshResponse struct {
	FeedID       int64  `json:"feed_id"`
	Outcome      string `json:"outcome"`
	EntriesAdded int    `json:"entries_added"`
	Interval     int    `json:"interval_seconds"`
	Available    bool   `json:"available"`
	Skipped      bool   `json:"skipped,omitempty"`
	Error        string `json:"error,omitempty"`
}

func toRefreshResponse(res domain.RefreshResult) refreshResponse {
	return refreshResponse{
		FeedID:       res.FeedID,
		Outcome:      res.Outcome.String(),
		EntriesAdded: res.EntriesAdded,
		Interval:     res.Interval,
		Available:    res.Available,
		Skipped:      res.Skipped,
		Error:        res.ErrorMessage,
	}
}

// refreshFeedHandler forces an immediate refresh of one feed
func (s *Server) refreshFeedHandler(w http.ResponseWriter, r *http.Request) {
	feedID, err := pathID(r, "id")
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}

	res, err := s.reader.RefreshFeed(r.Context(), feedID)
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}
	RenderJSON(w, r, http.StatusOK, toRefreshResponse(res))
}

// subscribeHandler subscribes a user to a feed by URL
func (s *Server) subscribeHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}

	var req struct {
		URL    string `json:"url"`
		Folder string `json:"folder"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RenderError(w, r, errors.New("invalid request body"), http.StatusBadRequest)
		return
	}

	sub, err := s.reader.Subscribe(r.Context(), userID, req.URL, req.Folder)
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}
	RenderJSON(w, r, http.StatusCreated, sub)
}

// unsubscribeHandler removes a user's subscription
func (s *Server) unsubscribeHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}
	feedID, err := pathID(r, "feedID")
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.reader.Unsubscribe(r.Context(), userID, feedID); err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// moveFolderHandler places a subscription into a folder, an empty folder
// name removes it from any folder
func (s *Server) moveFolderHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}
	feedID, err := pathID(r, "feedID")
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}

	var req struct {
		Folder string `json:"folder"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RenderError(w, r, errors.New("invalid request body"), http.StatusBadRequest)
		return
	}

	if err := s.reader.MoveToFolder(r.Context(), userID, feedID, req.Folder); err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// unreadHandler returns the user's unread summary
func (s *Server) unreadHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}

	summary, err := s.reader.Unread(r.Context(), userID)
	if err != nil {
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}
	RenderJSON(w, r, http.StatusOK, summary)
}

// feedEntriesHandler lists the newest entries of a subscribed feed
func (s *Server) feedEntriesHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}
	feedID, err := pathID(r, "feedID")
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit < 0 {
			RenderError(w, r, errors.New("invalid limit"), http.StatusBadRequest)
			return
		}
	}

	entries, err := s.reader.FeedEntries(r.Context(), userID, feedID, limit)
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}
	RenderJSON(w, r, http.StatusOK, entries)
}

// markFeedReadHandler marks every entry of the feed read for the user
func (s *Server) markFeedReadHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}
	feedID, err := pathID(r, "feedID")
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.reader.MarkFeedRead(r.Context(), userID, feedID); err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// markEntryHandler sets the read flag of one entry for the user
func (s *Server) markEntryHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}
	entryID, err := pathID(r, "entryID")
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}

	var req struct {
		Read bool `json:"read"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RenderError(w, r, errors.New("invalid request body"), http.StatusBadRequest)
		return
	}

	if err := s.reader.MarkEntry(r.Context(), userID, entryID, req.Read); err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathID parses a positive int64 path value
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}
