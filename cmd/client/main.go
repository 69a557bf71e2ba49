package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/apper-canvas/dropzone-mesh-link/env"
	"github.com/apper-canvas/dropzone-mesh-link/internal/services/api/controllers"
	"github.com/apper-canvas/dropzone-mesh-link/internal/services/repository"
	"github.com/apper-canvas/dropzone-mesh-link/internal/services/uploader"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: client <file> [<file>...]")
	}

	host := env.GetOptional(env.RestHost, "127.0.0.1:8080")
	client := resty.New().SetBaseURL(fmt.Sprintf("http://%s", host))

	if err := uploadBatch(client, os.Args[1:]); err != nil {
		log.Fatal(err)
	}

	if err := waitForQueue(client); err != nil {
		log.Fatal(err)
	}

	if err := printFiles(client); err != nil {
		log.Fatal(err)
	}
}

func uploadBatch(client *resty.Client, paths []string) error {
	req := client.R()
	for _, path := range paths {
		file, err := os.Open(path)
		if err != nil {
			return err
		}
		req.SetFileReader("files", filepath.Base(path), file)
	}

	var resp controllers.EnqueueResponse
	httpResp, err := req.SetResult(&resp).SetError(&resp).Post("/api/v1/uploads")
	if err != nil {
		return err
	}

	for _, r := range resp.Rejections {
		log.Printf("rejected: %v", r)
	}

	if httpResp.IsError() {
		return fmt.Errorf("unexpected status code: %d", httpResp.StatusCode())
	}

	log.Printf("enqueued %d files", len(resp.Tasks))
	return nil
}

func waitForQueue(client *resty.Client) error {
	for {
		var resp struct {
			Tasks []uploader.Task `json:"tasks"`
		}
		httpResp, err := client.R().SetResult(&resp).Get("/api/v1/uploads")
		if err != nil {
			return err
		}
		if httpResp.IsError() {
			return fmt.Errorf("unexpected status code: %d", httpResp.StatusCode())
		}

		if len(resp.Tasks) == 0 {
			return nil
		}

		for _, t := range resp.Tasks {
			log.Printf("%s: %s %d%% (%.1f MB/s)", t.File.Name, t.Status, t.Progress, t.Speed)
		}
		time.Sleep(time.Millisecond * 300)
	}
}

func printFiles(client *resty.Client) error {
	var resp struct {
		Files []repository.FileRecord `json:"files"`
	}
	httpResp, err := client.R().SetResult(&resp).Get("/api/v1/files")
	if err != nil {
		return err
	}
	if httpResp.IsError() {
		return fmt.Errorf("unexpected status code: %d", httpResp.StatusCode())
	}

	for _, f := range resp.Files {
		log.Printf("%s %s (%d bytes) uploaded at %s", f.ID, f.Name, f.Size, f.UploadedAt.Format(time.RFC3339))
	}
	return nil
}
