package verify_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/hireproof/pkg/verifysdk"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Container setup and shared helpers for verifyd end-to-end tests. Each
 * test gets its own verifyd and MinIO containers on a private network.
 */

const (
	testImageName = "hireproof-verifyd-test:latest"
	minioImage    = "minio/minio:RELEASE.2025-04-22T22-12-26Z"

	minioAlias  = "minio"
	minioUser   = "verifyd"
	minioSecret = "verifyd-secret-key"
	bucketName  = "hireproof-test"

	adminEmail    = "admin@hireproof.test"
	adminPassword = "Admin-Password-123"
)

var codePattern = regexp.MustCompile(`Your sign-in code is (\d{6})`)

// TestMain builds the verifyd image once for the whole package.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building verifyd Docker image...")
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up verifyd Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/verifyd/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	_ = exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName).Run()
}

// testEnv is a running verifyd wired to a MinIO bucket.
type testEnv struct {
	client   *verifysdk.Client
	verifyd  testcontainers.Container
	minioURL string // host reachable address of MinIO
}

type envOption func(map[string]string)

// withDefaultRateLimits drops the relaxed limits used by most tests.
func withDefaultRateLimits() envOption {
	return func(env map[string]string) {
		for k := range env {
			if strings.HasPrefix(k, "RATELIMIT_") {
				delete(env, k)
			}
		}
	}
}

func setupEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	ctx := context.Background()

	nw, err := network.New(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := nw.Remove(context.Background()); err != nil {
			t.Logf("failed to remove network: %v", err)
		}
	})

	minio, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:          minioImage,
			Cmd:            []string{"server", "/data"},
			ExposedPorts:   []string{"9000/tcp"},
			Networks:       []string{nw.Name},
			NetworkAliases: map[string][]string{nw.Name: {minioAlias}},
			Env: map[string]string{
				"MINIO_ROOT_USER":     minioUser,
				"MINIO_ROOT_PASSWORD": minioSecret,
			},
			WaitingFor: wait.ForHTTP("/minio/health/live").
				WithPort("9000/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { terminate(t, minio) })

	minioURL := endpoint(t, minio, "9000")
	createBucket(t, minioURL)

	env := map[string]string{
		"ENV":                       "test",
		"LOG_LEVEL":                 "info",
		"LOG_FORMAT":                "json",
		"STORAGE_BUCKET":            bucketName,
		"STORAGE_ENDPOINT":          "http://" + minioAlias + ":9000",
		"STORAGE_ACCESS_KEY_ID":     minioUser,
		"STORAGE_SECRET_ACCESS_KEY": minioSecret,
		"STORAGE_USE_PATH_STYLE":    "true",
		"BOOTSTRAP_ADMIN_EMAIL":     adminEmail,
		"BOOTSTRAP_ADMIN_PASSWORD":  adminPassword,
		"DISPATCH_INTERVAL":         "500ms",
		"MFA_RESEND_COOLDOWN":       "1s",

		"RATELIMIT_STRICT_REQUESTS":   "1000",
		"RATELIMIT_STRICT_BURST":      "1000",
		"RATELIMIT_MODERATE_REQUESTS": "1000",
		"RATELIMIT_MODERATE_BURST":    "1000",
		"RATELIMIT_LENIENT_REQUESTS":  "1000",
		"RATELIMIT_LENIENT_BURST":     "1000",
	}
	for _, opt := range opts {
		opt(env)
	}

	verifyd, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImageName,
			ExposedPorts: []string{"8080/tcp"},
			Networks:     []string{nw.Name},
			Env:          env,
			WaitingFor: wait.ForHTTP("/livez").
				WithPort("8080/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { terminate(t, verifyd) })

	return &testEnv{
		client:   verifysdk.NewClient(endpoint(t, verifyd, "8080")),
		verifyd:  verifyd,
		minioURL: minioURL,
	}
}

func endpoint(t *testing.T, c testcontainers.Container, port string) string {
	t.Helper()
	ctx := context.Background()

	mapped, err := c.MappedPort(ctx, nat.Port(port))
	require.NoError(t, err)
	host, err := c.Host(ctx)
	require.NoError(t, err)
	return fmt.Sprintf("http://%s:%s", host, mapped.Port())
}

func terminate(t *testing.T, c testcontainers.Container) {
	if err := c.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

func createBucket(t *testing.T, minioURL string) {
	t.Helper()

	client := s3.New(s3.Options{
		Region:       "us-east-1",
		BaseEndpoint: aws.String(minioURL),
		UsePathStyle: true,
		Credentials:  credentials.NewStaticCredentialsProvider(minioUser, minioSecret, ""),
	})
	_, err := client.CreateBucket(context.Background(), &s3.CreateBucketInput{Bucket: aws.String(bucketName)})
	require.NoError(t, err)
}

// upload PUTs data to a presigned URL. The URL names MinIO by its network
// alias, so the request is sent to the mapped port while keeping the signed
// Host header.
func (e *testEnv) upload(t *testing.T, uploadURL, contentType string, data []byte) {
	t.Helper()
	status, body := e.put(t, uploadURL, contentType, data)
	require.Equalf(t, http.StatusOK, status, "upload failed: %s", body)
}

// put sends the PUT and returns MinIO's status and body.
func (e *testEnv) put(t *testing.T, uploadURL, contentType string, data []byte) (int, string) {
	t.Helper()

	signed, err := url.Parse(uploadURL)
	require.NoError(t, err)
	target, err := url.Parse(e.minioURL)
	require.NoError(t, err)

	signedHost := signed.Host
	signed.Scheme = target.Scheme
	signed.Host = target.Host

	req, err := http.NewRequest(http.MethodPut, signed.String(), bytes.NewReader(data))
	require.NoError(t, err)
	req.Host = signedHost
	req.Header.Set("Content-Type", contentType)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

// logs returns everything verifyd has written so far.
func (e *testEnv) logs(t *testing.T) string {
	t.Helper()

	rc, err := e.verifyd.Logs(context.Background())
	require.NoError(t, err)
	defer rc.Close()
	out, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(out)
}

// latestCode returns the newest MFA code written to the log. With SMTP
// unset verifyd logs notifications instead of mailing them.
func (e *testEnv) latestCode(t *testing.T) string {
	t.Helper()

	var code string
	require.Eventually(t, func() bool {
		matches := codePattern.FindAllStringSubmatch(e.logs(t), -1)
		if len(matches) == 0 {
			return false
		}
		code = matches[len(matches)-1][1]
		return true
	}, 10*time.Second, 200*time.Millisecond, "no MFA code in logs")
	return code
}

// adminSession logs in the bootstrap admin and completes MFA.
func (e *testEnv) adminSession(t *testing.T) *verifysdk.Session {
	t.Helper()
	ctx := context.Background()

	sess, err := e.client.Login(ctx, adminEmail, adminPassword)
	require.NoError(t, err)
	require.False(t, sess.MFAComplete())

	require.NoError(t, sess.VerifyMFA(ctx, e.latestCode(t)))
	require.True(t, sess.MFAComplete())
	return sess
}

// seeker registers a job seeker and logs them in.
func (e *testEnv) seeker(t *testing.T, email string) (verifysdk.User, *verifysdk.Session) {
	t.Helper()
	ctx := context.Background()

	user, err := e.client.Register(ctx, verifysdk.RegisterRequest{
		Email:       email,
		DisplayName: "Test Seeker",
		Password:    "Seeker-Password-1",
		Role:        "SEEKER",
	})
	require.NoError(t, err)

	sess, err := e.client.Login(ctx, email, "Seeker-Password-1")
	require.NoError(t, err)
	require.True(t, sess.MFAComplete())
	return user, sess
}

// submitDocuments uploads the three identity assets and submits them.
func (e *testEnv) submitDocuments(t *testing.T, sess *verifysdk.Session) verifysdk.SubmitVerificationResponse {
	t.Helper()
	ctx := context.Background()

	urls := make([]string, 0, 3)
	for _, name := range []string{"front.jpg", "back.jpg", "selfie.jpg"} {
		grant, err := sess.Presign(ctx, name, "image/jpeg", "id-documents")
		require.NoError(t, err)
		e.upload(t, grant.UploadURL, "image/jpeg", []byte("\xff\xd8\xff"+name))
		urls = append(urls, grant.PublicURL)
	}

	resp, err := sess.SubmitVerification(ctx, verifysdk.SubmitVerificationRequest{
		DocFrontURL: urls[0],
		DocBackURL:  urls[1],
		SelfieURL:   urls[2],
	})
	require.NoError(t, err)
	return resp
}

func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()

	var apiErr *verifysdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
}
