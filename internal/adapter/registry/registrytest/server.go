// Package registrytest runs an in-process Registry for handshake tests.
//
// The server keeps its state in memory, speaks the Registry's JSON envelope
// protocol on the real paths, and enforces the checks the client relies on:
// nonce uniqueness, verify-before-use, passwords, voucher secrets, filters and
// double spending. Accounts added with AddAccount can log in and mint source
// API keys.
package registrytest

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"wom-connector/internal/adapter/registry"
	"wom-connector/internal/core/domain"
	"wom-connector/internal/service"
	"wom-connector/pkg/keyfile"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// KeyBits is the modulus size used for test keys.
const KeyBits = 1024

// Aims served by GET v2/aims.
var Aims = []domain.Aim{
	{Code: "E", Titles: map[string]string{"en": "Education"}, Order: 1},
	{Code: "H", Titles: map[string]string{"en": "Health"}, Order: 2},
	{Code: "HE", Titles: map[string]string{"en": "Health education"}, Order: 3},
}

type issuance struct {
	sourceID   domain.Identifier
	sourceName string
	password   string
	specs      []domain.VoucherCreateInfo
	verified   bool
	redeemed   bool
}

type storedVoucher struct {
	domain.Voucher
	spent bool
}

type payment struct {
	posID        domain.Identifier
	password     string
	amount       int
	filter       *domain.SimpleFilter
	pocketAckURL string
	persistent   bool
	verified     bool
	performed    []time.Time
}

type party struct {
	name    string
	key     *domain.AsymmetricKey
	private *domain.AsymmetricKey
}

type merchant struct {
	id         domain.Identifier
	name       string
	fiscalCode string
	poses      []domain.Identifier
}

type account struct {
	password  string
	name      string
	surname   string
	sources   []domain.Identifier
	merchants []merchant
}

// Server is a fake Registry.
type Server struct {
	t        testing.TB
	http     *httptest.Server
	key      *domain.AsymmetricKey
	envelope *service.EnvelopeService
	now      func() time.Time

	mu          sync.Mutex
	sources     map[domain.Identifier]party
	poses       map[domain.Identifier]party
	nonces      map[string]struct{}
	issuances   map[uuid.UUID]*issuance
	payments    map[uuid.UUID]*payment
	vouchers    map[domain.Identifier]*storedVoucher
	nextVoucher int64
	accounts    map[string]*account
	apiKeys     map[string]domain.Identifier
	selectors   map[string]string
	failures    map[string][]int
	calls       map[string]int
}

// NewServer starts a fake Registry that is shut down when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{
		t:         t,
		key:       GenerateKey(t),
		envelope:  service.NewEnvelopeService(zerolog.Nop()),
		now:       time.Now,
		sources:   make(map[domain.Identifier]party),
		poses:     make(map[domain.Identifier]party),
		nonces:    make(map[string]struct{}),
		issuances: make(map[uuid.UUID]*issuance),
		payments:  make(map[uuid.UUID]*payment),
		vouchers:  make(map[domain.Identifier]*storedVoucher),
		accounts:  make(map[string]*account),
		apiKeys:   make(map[string]domain.Identifier),
		selectors: make(map[string]string),
		failures:  make(map[string][]int),
		calls:     make(map[string]int),
	}

	s.http = httptest.NewServer(s.router())
	t.Cleanup(s.http.Close)
	return s
}

// GenerateKey returns a fresh test key pair.
func GenerateKey(t testing.TB) *domain.AsymmetricKey {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, KeyBits)
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}
	key, err := domain.NewPrivateKey(priv)
	if err != nil {
		t.Fatalf("wrapping key: %v", err)
	}
	return key
}

// Domain is the host:port the server listens on.
func (s *Server) Domain() string {
	return strings.TrimPrefix(s.http.URL, "http://")
}

// PublicKey is the Registry's public key.
func (s *Server) PublicKey() *domain.AsymmetricKey {
	return s.key.Public()
}

// Transport returns an HTTP transport pointed at the server.
func (s *Server) Transport() *registry.HTTPTransport {
	return registry.NewHTTPTransport("http", s.Domain(), s.http.Client(), zerolog.Nop())
}

// RegisterSource makes an instrument known to the Registry and returns its id.
func (s *Server) RegisterSource(name string, key *domain.AsymmetricKey) domain.Identifier {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := domain.MustIdentifier(fmt.Sprintf("src-%d", len(s.sources)+1))
	s.sources[id] = newParty(name, key)
	return id
}

// RegisterPOS makes a point of sale known to the Registry and returns its id.
func (s *Server) RegisterPOS(name string, key *domain.AsymmetricKey) domain.Identifier {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, _ := domain.NewNumericIdentifier(int64(100 + len(s.poses)))
	s.poses[id] = newParty(name, key)
	return id
}

func newParty(name string, key *domain.AsymmetricKey) party {
	p := party{name: name, key: key.Public()}
	if key.IsPrivate() {
		p.private = key
	}
	return p
}

// AddAccount creates a user account that can log in with email and password.
func (s *Server) AddAccount(email, password, name, surname string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[email] = &account{password: password, name: name, surname: surname}
}

// GrantSource makes the account an administrator of sourceID.
func (s *Server) GrantSource(email string, sourceID domain.Identifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.mustAccount(email)
	acc.sources = append(acc.sources, sourceID)
}

// AddMerchant gives the account a merchant owning poses and returns its id.
func (s *Server) AddMerchant(email, name, fiscalCode string, poses ...domain.Identifier) domain.Identifier {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.mustAccount(email)
	id := domain.MustIdentifier(fmt.Sprintf("mer-%d", len(acc.merchants)+1))
	acc.merchants = append(acc.merchants, merchant{id: id, name: name, fiscalCode: fiscalCode, poses: poses})
	return id
}

func (s *Server) mustAccount(email string) *account {
	acc, ok := s.accounts[email]
	if !ok {
		s.t.Fatalf("unknown account %q", email)
	}
	return acc
}

// FailNext makes the next call to path answer with status.
func (s *Server) FailNext(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = append(s.failures[path], status)
}

// Calls returns how many requests reached path.
func (s *Server) Calls(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

// SetClock overrides the server's notion of now.
func (s *Server) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.Use(s.intercept)

	api := r.Group("/api")
	api.GET("/v1/auth/key", s.handleKey)
	api.GET("/v2/aims", s.handleAims)
	api.POST("/v1/voucher/create", s.handleVoucherCreate)
	api.POST("/v1/voucher/verify", s.handleVoucherVerify)
	api.POST("/v1/voucher/redeem", s.handleVoucherRedeem)
	api.POST("/v1/payment/register", s.handlePaymentRegister)
	api.POST("/v1/payment/verify", s.handlePaymentVerify)
	api.POST("/v1/payment/info", s.handlePaymentInfo)
	api.POST("/v1/payment/confirm", s.handlePaymentConfirm)
	api.POST("/v1/payment/status", s.handlePaymentStatus)
	api.POST("/v2/auth/merchant", s.handleMerchantLogin)
	api.POST("/v1/auth/source", s.handleSourceLogin)
	api.POST("/v1/auth/apikey/create", s.handleAPIKeyCreate)
	api.POST("/v1/auth/apikey", s.handleAPIKeyCredentials)
	return r
}

// intercept counts calls and injects failures queued by FailNext.
func (s *Server) intercept(c *gin.Context) {
	path := strings.TrimPrefix(c.Request.URL.Path, "/api/")

	s.mu.Lock()
	s.calls[path]++
	var status int
	if queued := s.failures[path]; len(queued) > 0 {
		status = queued[0]
		s.failures[path] = queued[1:]
	}
	s.mu.Unlock()

	if status != 0 {
		c.AbortWithStatus(status)
		return
	}
	c.Next()
}

func (s *Server) handleKey(c *gin.Context) {
	pem, err := keyfile.EncodePublicKey(s.key)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/x-pem-file", pem)
}

func (s *Server) handleAims(c *gin.Context) {
	c.JSON(http.StatusOK, domain.AimList{Aims: Aims})
}

// useNonce records nonce for sender; false when it was seen before.
func (s *Server) useNonce(sender domain.Identifier, nonce string) bool {
	key := sender.String() + ":" + nonce
	if _, seen := s.nonces[key]; seen {
		return false
	}
	s.nonces[key] = struct{}{}
	return true
}

func (s *Server) handleVoucherCreate(c *gin.Context) {
	var req domain.VoucherCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	source, ok := s.sources[req.SourceID]
	if !ok {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	var content domain.VoucherCreateContent
	if err := s.envelope.Decrypt(req.Payload, s.key, &content); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	if content.SourceID != req.SourceID || content.Nonce != req.Nonce || len(content.Vouchers) == 0 {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	if !s.useNonce(req.SourceID, req.Nonce) {
		c.AbortWithStatus(http.StatusUnprocessableEntity)
		return
	}

	password := content.Password
	if password == "" {
		password = randomPassword()
	}
	otc := uuid.New()
	s.issuances[otc] = &issuance{
		sourceID:   req.SourceID,
		sourceName: source.name,
		password:   password,
		specs:      content.Vouchers,
	}

	count := 0
	for _, v := range content.Vouchers {
		count += v.Count
	}
	s.respond(c, domain.TransferResponseContent{
		RegistryURL: "http://" + s.Domain(),
		Nonce:       req.Nonce,
		Otc:         otc,
		Password:    password,
		Link:        domain.NewVoucherRequest(s.Domain(), otc, password).Link,
		Count:       count,
	}, source.key)
}

func (s *Server) handleVoucherVerify(c *gin.Context) {
	var content domain.OtcContent
	if !s.openEnvelope(c, &content) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	iss, ok := s.issuances[content.Otc]
	if !ok {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	iss.verified = true
	c.Status(http.StatusOK)
}

func (s *Server) handleVoucherRedeem(c *gin.Context) {
	var content domain.VoucherRedeemContent
	if !s.openEnvelope(c, &content) {
		return
	}
	sessionKey, err := base64.StdEncoding.DecodeString(content.SessionKey)
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	iss, ok := s.issuances[content.Otc]
	if !ok || !iss.verified {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	if iss.password != content.Password {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	if iss.redeemed {
		c.AbortWithStatus(http.StatusGone)
		return
	}

	var vouchers []domain.Voucher
	for _, spec := range iss.specs {
		lat, lng := spec.Latitude, spec.Longitude
		if spec.CreationMode == domain.CreationModeSetLocationOnRedeem {
			if content.RedeemLocation == nil {
				c.AbortWithStatus(http.StatusBadRequest)
				return
			}
			lat, lng = content.RedeemLocation.Latitude, content.RedeemLocation.Longitude
		}
		for range spec.Count {
			s.nextVoucher++
			id, _ := domain.NewNumericIdentifier(s.nextVoucher)
			v := domain.NewVoucher(id, randomPassword()+randomPassword(), spec.Aim, lat, lng, spec.Timestamp)
			s.vouchers[id] = &storedVoucher{Voucher: v}
			vouchers = append(vouchers, v)
		}
	}
	iss.redeemed = true

	s.respondSession(c, domain.VoucherRedeemResponseContent{
		SourceID:   iss.sourceID,
		SourceName: iss.sourceName,
		Vouchers:   vouchers,
	}, sessionKey)
}

func (s *Server) handlePaymentRegister(c *gin.Context) {
	var req domain.PaymentRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.poses[req.PosID]
	if !ok {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	var content domain.PaymentRegisterContent
	if err := s.envelope.Decrypt(req.Payload, s.key, &content); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	if content.PosID != req.PosID || content.Nonce != req.Nonce || content.Amount <= 0 || content.PocketAckURL == "" {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	if !s.useNonce(req.PosID, req.Nonce) {
		c.AbortWithStatus(http.StatusUnprocessableEntity)
		return
	}

	password := content.Password
	if password == "" {
		password = randomPassword()
	}
	otc := uuid.New()
	s.payments[otc] = &payment{
		posID:        req.PosID,
		password:     password,
		amount:       content.Amount,
		filter:       content.SimpleFilter,
		pocketAckURL: content.PocketAckURL,
		persistent:   content.Persistent,
	}

	s.respond(c, domain.TransferResponseContent{
		RegistryURL: "http://" + s.Domain(),
		Nonce:       req.Nonce,
		Otc:         otc,
		Password:    password,
		Link:        domain.NewPaymentRequest(s.Domain(), otc, password).Link,
	}, pos.key)
}

func (s *Server) handlePaymentVerify(c *gin.Context) {
	var content domain.OtcContent
	if !s.openEnvelope(c, &content) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[content.Otc]
	if !ok {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	p.verified = true
	c.Status(http.StatusOK)
}

// openPayment returns the usable payment for otc/password, or aborts.
func (s *Server) openPayment(c *gin.Context, otc uuid.UUID, password string) *payment {
	p, ok := s.payments[otc]
	if !ok || !p.verified {
		c.AbortWithStatus(http.StatusNotFound)
		return nil
	}
	if p.password != password {
		c.AbortWithStatus(http.StatusUnauthorized)
		return nil
	}
	if len(p.performed) > 0 && !p.persistent {
		c.AbortWithStatus(http.StatusGone)
		return nil
	}
	return p
}

func (s *Server) handlePaymentInfo(c *gin.Context) {
	var content domain.SessionContent
	if !s.openEnvelope(c, &content) {
		return
	}
	sessionKey, err := base64.StdEncoding.DecodeString(content.SessionKey)
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.openPayment(c, content.Otc, content.Password)
	if p == nil {
		return
	}

	s.respondSession(c, domain.PaymentInfoResponseContent{
		PosID:        p.posID,
		PosName:      s.poses[p.posID].name,
		Amount:       p.amount,
		SimpleFilter: p.filter,
		Persistent:   p.persistent,
	}, sessionKey)
}

func (s *Server) handlePaymentConfirm(c *gin.Context) {
	var content domain.PaymentConfirmContent
	if !s.openEnvelope(c, &content) {
		return
	}
	sessionKey, err := base64.StdEncoding.DecodeString(content.SessionKey)
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.openPayment(c, content.Otc, content.Password)
	if p == nil {
		return
	}
	if len(content.Vouchers) != p.amount {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	now := s.now()
	seen := make(map[domain.Identifier]struct{}, len(content.Vouchers))
	for _, proof := range content.Vouchers {
		v, ok := s.vouchers[proof.ID]
		if !ok || v.Secret != proof.Secret {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		if _, dup := seen[proof.ID]; dup || v.spent {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		if !p.filter.Matches(v.Voucher, now) {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		seen[proof.ID] = struct{}{}
	}

	for _, proof := range content.Vouchers {
		s.vouchers[proof.ID].spent = true
	}
	p.performed = append(p.performed, now.UTC())

	s.respondSession(c, domain.PaymentConfirmResponseContent{AckURL: p.pocketAckURL}, sessionKey)
}

func (s *Server) handlePaymentStatus(c *gin.Context) {
	var req domain.PaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.poses[req.PosID]
	if !ok {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	var content domain.PaymentStatusContent
	if err := s.envelope.Decrypt(req.Payload, s.key, &content); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	p, ok := s.payments[content.Otc]
	if !ok || p.posID != req.PosID || content.PosID != req.PosID {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	status := domain.PaymentStatus{
		Persistent:       p.persistent,
		HasBeenPerformed: len(p.performed) > 0,
	}
	for _, at := range p.performed {
		status.Confirmations = append(status.Confirmations, domain.PaymentConfirmation{PerformedAt: at})
	}

	payload, err := s.envelope.Encrypt(status, pos.key)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, domain.PaymentStatusRequest{PosID: req.PosID, Payload: payload})
}

// authenticate returns the account named by the basic credentials, or aborts.
// Callers hold s.mu.
func (s *Server) authenticate(c *gin.Context) *account {
	email, password, ok := c.Request.BasicAuth()
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return nil
	}
	acc, found := s.accounts[email]
	if !found || acc.password != password {
		c.AbortWithStatus(http.StatusUnauthorized)
		return nil
	}
	return acc
}

func (s *Server) handleMerchantLogin(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc := s.authenticate(c)
	if acc == nil {
		return
	}
	email, _, _ := c.Request.BasicAuth()

	out := domain.MerchantLogin{
		Name:      acc.name,
		Surname:   acc.surname,
		Email:     email,
		Merchants: []domain.Merchant{},
	}
	for _, m := range acc.merchants {
		entry := domain.Merchant{ID: m.id, Name: m.name, FiscalCode: m.fiscalCode, POS: []domain.POSCredentials{}}
		for _, id := range m.poses {
			pos, ok := s.poses[id]
			if !ok {
				continue
			}
			entry.POS = append(entry.POS, domain.POSCredentials{
				ID:         id,
				Name:       pos.name,
				PrivateKey: s.privatePEM(pos),
				PublicKey:  s.publicPEM(pos),
			})
		}
		out.Merchants = append(out.Merchants, entry)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleSourceLogin(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc := s.authenticate(c)
	if acc == nil {
		return
	}

	out := domain.SourceLogin{Sources: []domain.SourceCredentials{}}
	for _, id := range acc.sources {
		src, ok := s.sources[id]
		if !ok {
			continue
		}
		out.Sources = append(out.Sources, domain.SourceCredentials{
			ID:         id,
			Name:       src.name,
			PrivateKey: s.privatePEM(src),
			PublicKey:  s.publicPEM(src),
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleAPIKeyCreate(c *gin.Context) {
	var req domain.SourceAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Selector == "" {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc := s.authenticate(c)
	if acc == nil {
		return
	}
	if !slices.Contains(acc.sources, req.SourceID) {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	slot := req.SourceID.String() + "/" + req.Selector
	apiKey, ok := s.selectors[slot]
	if !ok {
		apiKey = uuid.NewString()
		s.selectors[slot] = apiKey
		s.apiKeys[apiKey] = req.SourceID
	}
	c.JSON(http.StatusOK, domain.SourceAPIKey{
		SourceID: req.SourceID,
		Selector: req.Selector,
		Kind:     domain.APIKeyKindSource,
		APIKey:   apiKey,
	})
}

func (s *Server) handleAPIKeyCredentials(c *gin.Context) {
	var req domain.APIKeyCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sourceID, ok := s.apiKeys[req.APIKey]
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	src := s.sources[sourceID]
	if src.private == nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, domain.APIKeyCredentials{
		EntityKind: domain.APIKeyKindSource,
		EntityID:   sourceID,
		PrivateKey: s.privatePEM(src),
		PublicKey:  s.publicPEM(src),
	})
}

func (s *Server) privatePEM(p party) string {
	if p.private == nil {
		return ""
	}
	pem, err := keyfile.EncodePrivateKey(p.private)
	if err != nil {
		s.t.Errorf("encoding private key: %v", err)
	}
	return string(pem)
}

func (s *Server) publicPEM(p party) string {
	pem, err := keyfile.EncodePublicKey(p.key)
	if err != nil {
		s.t.Errorf("encoding public key: %v", err)
	}
	return string(pem)
}

// openEnvelope binds an {payload} body and decrypts it with the Registry key.
func (s *Server) openEnvelope(c *gin.Context, out any) bool {
	var env domain.Envelope
	if err := c.ShouldBindJSON(&env); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return false
	}
	if err := s.envelope.Decrypt(env.Payload, s.key, out); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) respond(c *gin.Context, content any, receiver *domain.AsymmetricKey) {
	payload, err := s.envelope.Encrypt(content, receiver)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, domain.Envelope{Payload: payload})
}

func (s *Server) respondSession(c *gin.Context, content any, sessionKey []byte) {
	payload, err := s.envelope.SessionEncrypt(content, sessionKey)
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, domain.Envelope{Payload: payload})
}

func randomPassword() string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("%04d", n.Int64())
}
