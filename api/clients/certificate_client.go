// Package clients provides Go clients for the certificate registry HTTP API.
package clients

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/certchain/certificate-registry-backend/api"
	"github.com/certchain/certificate-registry-backend/interfaces"
)

// CertificateClient implements api.CertificateProvider over HTTP.
type CertificateClient struct {
	// ServerAddr is the base URL of the registry server.
	ServerAddr string

	// HTTPClient defaults to http.DefaultClient when nil.
	HTTPClient *http.Client
}

func (c *CertificateClient) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// Upload stores a certificate document and returns its pending application
// certificate ID. The document is sent as a multipart form with the metadata
// fields alongside it.
func (c *CertificateClient) Upload(document []byte, meta api.UploadMetadata) (*api.UploadResponse, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", `form-data; name="certificate"; filename="certificate.pdf"`)
	partHeader.Set("Content-Type", "application/pdf")
	part, err := writer.CreatePart(partHeader)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(document); err != nil {
		return nil, err
	}
	fields := map[string]string{
		"studentName": meta.StudentName,
		"courseName":  meta.CourseName,
		"grade":       meta.Grade,
		"description": meta.Description,
	}
	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(name, value); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.ServerAddr+"/api/certificates", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var resp api.UploadResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Issue anchors a pending certificate on the ledger.
func (c *CertificateClient) Issue(id string, issueReq api.IssueRequest) (*api.IssueResponse, error) {
	req, err := c.jsonRequest(http.MethodPost, fmt.Sprintf("%s/api/certificates/%s/issue", c.ServerAddr, id), issueReq)
	if err != nil {
		return nil, err
	}
	var resp api.IssueResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AttachTransaction reports a client-submitted issuing transaction.
func (c *CertificateClient) AttachTransaction(id string, txHash string) (*api.IssueResponse, error) {
	req, err := c.jsonRequest(http.MethodPut, fmt.Sprintf("%s/api/certificates/%s/issue", c.ServerAddr, id), api.AttachRequest{TransactionHash: txHash})
	if err != nil {
		return nil, err
	}
	var resp api.IssueResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyByKey verifies a certificate by its ledger record key.
func (c *CertificateClient) VerifyByKey(recordKey string) (*interfaces.VerificationResult, error) {
	return c.verify(fmt.Sprintf("%s/api/verify/key/%s", c.ServerAddr, recordKey))
}

// VerifyByApplicationID verifies a certificate by application ID.
func (c *CertificateClient) VerifyByApplicationID(id string) (*interfaces.VerificationResult, error) {
	return c.verify(fmt.Sprintf("%s/api/verify/id/%s", c.ServerAddr, id))
}

// VerifyByTransaction verifies the certificate issued by a transaction.
func (c *CertificateClient) VerifyByTransaction(txHash string) (*interfaces.VerificationResult, error) {
	return c.verify(fmt.Sprintf("%s/api/verify/tx/%s", c.ServerAddr, txHash))
}

// Revoke permanently invalidates a certificate record.
func (c *CertificateClient) Revoke(recordKey string) (*api.RevokeResponse, error) {
	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/api/revoke/%s", c.ServerAddr, recordKey), nil)
	if err != nil {
		return nil, err
	}
	var resp api.RevokeResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health probes the service's components. A degraded service still returns a
// parsed response; the HTTP status alone distinguishes healthy from not.
func (c *CertificateClient) Health() (*api.HealthResponse, error) {
	httpResp, err := c.httpClient().Get(c.ServerAddr + "/api/health")
	if err != nil {
		return nil, fmt.Errorf("could not request health endpoint: %w", err)
	}
	defer httpResp.Body.Close()

	var resp api.HealthResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("could not parse health response: %w", err)
	}
	return &resp, nil
}

func (c *CertificateClient) verify(url string) (*interfaces.VerificationResult, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	var result interfaces.VerificationResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *CertificateClient) jsonRequest(method, url string, payload any) (*http.Request, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(method, url, bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *CertificateClient) do(req *http.Request, out any) error {
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("could not request %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("%s returned non-200 response: %d", req.URL.Path, resp.StatusCode)
		}
		var apiErr api.ErrorResponse
		if jsonErr := json.Unmarshal(bodyBytes, &apiErr); jsonErr == nil && apiErr.Error != "" {
			return fmt.Errorf("%s returned error %d: %s", req.URL.Path, resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("%s returned error %d: %s", req.URL.Path, resp.StatusCode, string(bodyBytes))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("could not parse response from %s: %w", req.URL.Path, err)
	}
	return nil
}
