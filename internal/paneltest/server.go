// Package paneltest runs an in-process fake panel for tests.
package paneltest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
)

const sessionCookie = "3x-ui"

// Request is a request recorded by the fake panel
type Request struct {
	Method string
	Path   string
	Body   []byte
}

type failure struct {
	status int
	msg    string
}

// Server is a fake panel answering the settings, inbound and login endpoints
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	settings json.RawMessage
	inbounds []json.RawMessage
	requests []Request
	failures map[string]failure

	username string
	password string
	sessions map[string]bool
	logins   int
}

// NewServer starts a fake panel without authentication
func NewServer() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		settings: json.RawMessage(`{}`),
		failures: make(map[string]failure),
		sessions: make(map[string]bool),
	}

	r := gin.New()
	r.Use(s.record, s.authorize, s.fail)
	r.POST("/login", s.login)
	r.POST("/panel/setting/all", s.getSettings)
	r.POST("/panel/setting/update", s.updateSettings)
	r.POST("/panel/setting/restartPanel", s.ok)
	r.GET("/panel/api/inbounds/list", s.listInbounds)
	r.GET("/panel/api/inbounds/get/:id", s.getInbound)
	r.POST("/panel/api/inbounds/addClient", s.addClient)
	r.POST("/panel/api/inbounds/:id/resetClientTraffic/:email", s.resetClientTraffic)

	s.Server = httptest.NewServer(r)
	return s
}

// RequireLogin makes every endpoint but /login answer 401 without a session
func (s *Server) RequireLogin(username, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = username
	s.password = password
}

// ExpireSessions drops every issued session
func (s *Server) ExpireSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]bool)
}

// SetSettings sets the obj returned by panel/setting/all
func (s *Server) SetSettings(obj string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = json.RawMessage(obj)
}

// Settings returns the stored settings, updated by panel/setting/update
func (s *Server) Settings() json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// AddInbound appends an inbound to panel/api/inbounds/list
func (s *Server) AddInbound(obj string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inbounds = append(s.inbounds, json.RawMessage(obj))
}

// Inbound returns the stored inbound with the given id
func (s *Server) Inbound(id int) (json.RawMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findInbound(id)
	if i < 0 {
		return nil, false
	}
	return s.inbounds[i], true
}

// Fail makes path answer with status. A 200 status answers with success=false.
func (s *Server) Fail(path string, status int, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = failure{status: status, msg: msg}
}

// Requests returns the recorded requests for path
func (s *Server) Requests(path string) []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Request
	for _, req := range s.requests {
		if req.Path == path {
			out = append(out, req)
		}
	}
	return out
}

// Logins returns the number of successful logins
func (s *Server) Logins() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logins
}

func (s *Server) record(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	c.Set("body", body)

	s.mu.Lock()
	s.requests = append(s.requests, Request{Method: c.Request.Method, Path: c.Request.URL.Path, Body: body})
	s.mu.Unlock()
	c.Next()
}

func (s *Server) authorize(c *gin.Context) {
	s.mu.Lock()
	required := s.username != ""
	s.mu.Unlock()

	if !required || c.Request.URL.Path == "/login" {
		c.Next()
		return
	}

	token, err := c.Cookie(sessionCookie)
	s.mu.Lock()
	valid := err == nil && s.sessions[token]
	s.mu.Unlock()

	if !valid {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	c.Next()
}

func (s *Server) fail(c *gin.Context) {
	s.mu.Lock()
	f, ok := s.failures[c.Request.URL.Path]
	s.mu.Unlock()

	if !ok {
		c.Next()
		return
	}
	if f.status == http.StatusOK {
		c.AbortWithStatusJSON(http.StatusOK, gin.H{"success": false, "msg": f.msg, "obj": nil})
		return
	}
	c.AbortWithStatusJSON(f.status, gin.H{"success": false, "msg": f.msg})
}

func (s *Server) login(c *gin.Context) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	_ = json.Unmarshal(body(c), &creds)

	s.mu.Lock()
	defer s.mu.Unlock()

	if creds.Username != s.username || creds.Password != s.password {
		c.JSON(http.StatusOK, gin.H{"success": false, "msg": "wrong username or password", "obj": nil})
		return
	}

	s.logins++
	token := "session-" + strconv.Itoa(s.logins)
	s.sessions[token] = true
	c.SetCookie(sessionCookie, token, 3600, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "msg": "Login successfully", "obj": nil})
}

func (s *Server) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "msg": "", "obj": s.Settings()})
}

func (s *Server) updateSettings(c *gin.Context) {
	payload := body(c)
	if !json.Valid(payload) {
		c.JSON(http.StatusOK, gin.H{"success": false, "msg": "invalid body", "obj": nil})
		return
	}
	s.SetSettings(string(payload))
	s.ok(c)
}

func (s *Server) ok(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "msg": "", "obj": nil})
}

func (s *Server) listInbounds(c *gin.Context) {
	s.mu.Lock()
	list := make([]json.RawMessage, len(s.inbounds))
	copy(list, s.inbounds)
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"success": true, "msg": "", "obj": list})
}

func (s *Server) getInbound(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "msg": "invalid id", "obj": nil})
		return
	}

	raw, ok := s.Inbound(id)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"success": false, "msg": "inbound not found", "obj": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "msg": "", "obj": raw})
}

func (s *Server) addClient(c *gin.Context) {
	var req struct {
		ID       int    `json:"id"`
		Settings string `json:"settings"`
	}
	if err := json.Unmarshal(body(c), &req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "msg": "invalid body", "obj": nil})
		return
	}

	var added struct {
		Clients []map[string]any `json:"clients"`
	}
	if err := decodeNumbers([]byte(req.Settings), &added); err != nil || len(added.Clients) == 0 {
		c.JSON(http.StatusOK, gin.H{"success": false, "msg": "invalid settings", "obj": nil})
		return
	}

	err := s.updateInbound(req.ID, func(inbound map[string]any) error {
		settings, err := settingsOf(inbound)
		if err != nil {
			return err
		}
		clients, _ := settings["clients"].([]any)
		for _, client := range added.Clients {
			for _, existing := range clients {
				if e, ok := existing.(map[string]any); ok && e["email"] == client["email"] {
					return fmt.Errorf("duplicate email: %v", client["email"])
				}
			}
			clients = append(clients, client)
		}
		settings["clients"] = clients

		text, err := json.Marshal(settings)
		if err != nil {
			return err
		}
		inbound["settings"] = string(text)
		return nil
	})
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "msg": err.Error(), "obj": nil})
		return
	}
	s.ok(c)
}

func (s *Server) resetClientTraffic(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "msg": "invalid id", "obj": nil})
		return
	}
	email := c.Param("email")

	err = s.updateInbound(id, func(inbound map[string]any) error {
		stats, _ := inbound["clientStats"].([]any)
		for _, stat := range stats {
			if st, ok := stat.(map[string]any); ok && st["email"] == email {
				st["up"] = 0
				st["down"] = 0
				return nil
			}
		}
		return fmt.Errorf("client %s not found", email)
	})
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "msg": err.Error(), "obj": nil})
		return
	}
	s.ok(c)
}

// updateInbound applies fn to the inbound with the given id and stores the
// result
func (s *Server) updateInbound(id int, fn func(inbound map[string]any) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findInbound(id)
	if i < 0 {
		return fmt.Errorf("inbound %d not found", id)
	}

	var inbound map[string]any
	if err := decodeNumbers(s.inbounds[i], &inbound); err != nil {
		return err
	}
	if err := fn(inbound); err != nil {
		return err
	}

	raw, err := json.Marshal(inbound)
	if err != nil {
		return err
	}
	s.inbounds[i] = raw
	return nil
}

// findInbound returns the index of the inbound with the given id, or -1.
// s.mu must be held.
func (s *Server) findInbound(id int) int {
	for i, raw := range s.inbounds {
		var head struct {
			ID int `json:"id"`
		}
		if json.Unmarshal(raw, &head) == nil && head.ID == id {
			return i
		}
	}
	return -1
}

// settingsOf returns the inbound settings, which the panel stores as JSON text
func settingsOf(inbound map[string]any) (map[string]any, error) {
	settings := map[string]any{}
	switch v := inbound["settings"].(type) {
	case string:
		if err := decodeNumbers([]byte(v), &settings); err != nil {
			return nil, err
		}
	case map[string]any:
		settings = v
	}
	return settings, nil
}

func decodeNumbers(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

func body(c *gin.Context) []byte {
	if v, ok := c.Get("body"); ok {
		return v.([]byte)
	}
	return nil
}
