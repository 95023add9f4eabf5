// adminctl консоль оператора: загрузка черновика, правки и сохранение
// целиком через выбранный бэкенд. Токен записи запрашивается заново
// на каждое мутирующее действие и нигде не кешируется.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"portfolio_cms/internal/config"
	"portfolio_cms/internal/domain/models"
	"portfolio_cms/internal/lib/logger/sl"
	"portfolio_cms/internal/repository"
	admin "portfolio_cms/internal/services/admin_service"
	content "portfolio_cms/internal/services/content_service"
	upload "portfolio_cms/internal/services/upload_service"
	"portfolio_cms/internal/storage/blobstore"
)

func main() {
	var (
		configPath string
		action     string
		galleryKey string
		slideTitle string
		slideSrc   string
		slideVideo string
		slideIndex int
		bio        string
		files      string
	)

	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.StringVar(&action, "action", "dump", "dump | set-bio | append-slide | remove-slide | upload")
	flag.StringVar(&galleryKey, "gallery", "", "gallery key")
	flag.StringVar(&slideTitle, "title", "", "slide title")
	flag.StringVar(&slideSrc, "src", "", "slide media reference")
	flag.StringVar(&slideVideo, "video", "", "slide video reference")
	flag.IntVar(&slideIndex, "index", -1, "slide index")
	flag.StringVar(&bio, "bio", "", "site bio text")
	flag.StringVar(&files, "files", "", "comma-separated files to upload")
	flag.Parse()

	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}
	cfg := config.MustLoadPath(configPath)

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	repo, err := repository.New(cfg.Backend)
	if err != nil {
		fail(log, "failed to select backend", err)
	}

	contentService := content.NewContentService(log, repo)
	session := admin.NewAdminSession(log, contentService)

	ctx := context.Background()
	session.Load(ctx)

	switch action {
	case "dump":
		dump(session)

	case "set-bio":
		session.SetBio(bio)
		saveAll(ctx, log, session)

	case "append-slide":
		slide := models.Slide{Title: slideTitle, Src: slideSrc, Video: slideVideo}
		if err := session.AppendSlide(galleryKey, slide); err != nil {
			if err := session.AddGallery(galleryKey); err != nil {
				fail(log, "failed to create gallery", err)
			}
			if err := session.AppendSlide(galleryKey, slide); err != nil {
				fail(log, "failed to append slide", err)
			}
		}
		saveAll(ctx, log, session)

	case "remove-slide":
		if err := session.RemoveSlide(galleryKey, slideIndex); err != nil {
			fail(log, "failed to remove slide", err)
		}
		saveAll(ctx, log, session)

	case "upload":
		uploadFiles(ctx, log, cfg, strings.Split(files, ","))

	default:
		fmt.Fprintf(os.Stderr, "unknown action %q\n", action)
		os.Exit(2)
	}
}

func dump(session *admin.AdminSession) {
	out := struct {
		Galleries models.Galleries  `json:"galleries"`
		Site      models.SiteConfig `json:"site"`
	}{session.Galleries(), session.SiteConfig()}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
}

func saveAll(ctx context.Context, log *slog.Logger, session *admin.AdminSession) {
	if err := session.SaveAll(ctx, promptToken()); err != nil {
		fail(log, "save failed", err)
	}
	fmt.Fprintln(os.Stderr, "saved")
}

func uploadFiles(ctx context.Context, log *slog.Logger, cfg *config.Config, names []string) {
	var batch []upload.File
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		data, err := os.ReadFile(name)
		if err != nil {
			fail(log, "failed to read file", err)
		}

		batch = append(batch, upload.File{Name: name, Data: data})
	}

	uploader, err := buildUploader(ctx, cfg)
	if err != nil {
		fail(log, "failed to build uploader", err)
	}

	service := upload.NewUploadService(log, uploader)

	refs, err := service.UploadAll(ctx, promptToken(), batch)
	if err != nil {
		fail(log, "upload failed", err)
	}

	for _, ref := range refs {
		fmt.Println(ref)
	}
}

func buildUploader(ctx context.Context, cfg *config.Config) (upload.Uploader, error) {
	switch cfg.Backend.Kind {
	case config.BackendFile:
		return upload.NewAPIUploader(http.DefaultClient, cfg.Backend.APIBase), nil
	case config.BackendFirestore:
		store, err := blobstore.New(ctx, cfg.Backend.Firestore.Bucket, cfg.Backend.Firestore.CredentialsFile)
		if err != nil {
			return nil, err
		}
		return upload.NewBlobUploader(store), nil
	default:
		return nil, fmt.Errorf("unknown backend kind %q", cfg.Backend.Kind)
	}
}

func promptToken() string {
	fmt.Fprint(os.Stderr, "write token: ")

	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')

	return strings.TrimSpace(line)
}

func fail(log *slog.Logger, msg string, err error) {
	log.Error(msg, sl.Err(err))
	os.Exit(1)
}
