package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	rootCmd   = &cobra.Command{
		Use:   "audiofetch",
		Short: "Audiofetch CLI - find and download audiobook audio from YouTube",
		Long:  `A command-line interface for the audiofetch server: scan your book library, search YouTube and manage downloads.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Server URL")

	rootCmd.AddCommand(booksCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(configCmd)
}

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "List book folders and files from the configured library",
	Run: func(cmd *cobra.Command, args []string) {
		var resp struct {
			Books []struct {
				ItemName    string `json:"item_name"`
				Author      string `json:"author"`
				Title       string `json:"title"`
				SearchQuery string `json:"search_query"`
				Type        string `json:"type"`
			} `json:"books"`
		}
		getJSON("/books", &resp)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TYPE\tAUTHOR\tTITLE\tQUERY")
		for _, b := range resp.Books {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", b.Type, b.Author, b.Title, b.SearchQuery)
		}
		w.Flush()
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search YouTube for matching audio content",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		maxResults, _ := cmd.Flags().GetInt("max-results")

		var resp struct {
			Results []struct {
				Title    string `json:"title"`
				Channel  string `json:"channel"`
				Duration string `json:"duration"`
				URL      string `json:"url"`
			} `json:"results"`
		}
		postJSON("/search", map[string]interface{}{
			"query":      args[0],
			"maxResults": maxResults,
		}, &resp)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TITLE\tCHANNEL\tDURATION\tURL")
		for _, r := range resp.Results {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Title, r.Channel, r.Duration, r.URL)
		}
		w.Flush()
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Start a download for a YouTube result",
	Run: func(cmd *cobra.Command, args []string) {
		bookTitle, _ := cmd.Flags().GetString("book-title")
		author, _ := cmd.Flags().GetString("author")
		url, _ := cmd.Flags().GetString("url")
		title, _ := cmd.Flags().GetString("title")

		var resp struct {
			DownloadID uint `json:"download_id"`
		}
		postJSON("/download", map[string]string{
			"book_title":    bookTitle,
			"author":        author,
			"youtube_url":   url,
			"youtube_title": title,
		}, &resp)

		fmt.Printf("Download started with ID %d\n", resp.DownloadID)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List download history (newest first)",
	Run: func(cmd *cobra.Command, args []string) {
		var resp struct {
			Items []struct {
				ID        uint    `json:"id"`
				BookTitle string  `json:"book_title"`
				Status    string  `json:"status"`
				Progress  float64 `json:"progress"`
			} `json:"items"`
		}
		getJSON("/history", &resp)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tBOOK\tSTATUS\tPROGRESS")
		for _, item := range resp.Items {
			fmt.Fprintf(w, "%d\t%s\t%s\t%.1f%%\n", item.ID, item.BookTitle, item.Status, item.Progress)
		}
		w.Flush()
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress [id]",
	Short: "Show progress of a download",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var resp struct {
			ID             uint    `json:"id"`
			Status         string  `json:"status"`
			Progress       float64 `json:"progress"`
			TotalSize      int64   `json:"total_size"`
			DownloadedSize int64   `json:"downloaded_size"`
			BookTitle      string  `json:"book_title"`
		}
		getJSON("/progress/"+args[0], &resp)

		fmt.Printf("#%d %s: %s %.1f%% (%d/%d bytes)\n",
			resp.ID, resp.BookTitle, resp.Status, resp.Progress, resp.DownloadedSize, resp.TotalSize)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a history record",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		req, _ := http.NewRequest(http.MethodDelete, serverURL+"/history/"+args[0], nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			fmt.Fprintf(os.Stderr, "Error: %s\n", string(body))
			os.Exit(1)
		}
		fmt.Println("Deleted")
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update the books and download directories",
	Run: func(cmd *cobra.Command, args []string) {
		booksDir, _ := cmd.Flags().GetString("books-dir")
		downloadDir, _ := cmd.Flags().GetString("download-dir")

		var resp struct {
			BooksDir    string `json:"books_dir"`
			DownloadDir string `json:"download_dir"`
		}

		if booksDir == "" && downloadDir == "" {
			getJSON("/config", &resp)
		} else {
			postJSON("/config", map[string]string{
				"books_dir":    booksDir,
				"download_dir": downloadDir,
			}, &resp)
		}

		fmt.Printf("books_dir: %s\ndownload_dir: %s\n", resp.BooksDir, resp.DownloadDir)
	},
}

func init() {
	searchCmd.Flags().Int("max-results", 10, "Maximum number of results")

	downloadCmd.Flags().String("book-title", "", "Book title (required)")
	downloadCmd.Flags().String("author", "", "Author (may be empty)")
	downloadCmd.Flags().String("url", "", "YouTube URL (required)")
	downloadCmd.Flags().String("title", "", "YouTube video title (required)")
	downloadCmd.MarkFlagRequired("book-title")
	downloadCmd.MarkFlagRequired("url")
	downloadCmd.MarkFlagRequired("title")

	configCmd.Flags().String("books-dir", "", "New books directory")
	configCmd.Flags().String("download-dir", "", "New download directory")
}

func getJSON(path string, out interface{}) {
	resp, err := http.Get(serverURL + path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "Error: %s\n", string(body))
		os.Exit(1)
	}
	if err := json.Unmarshal(body, out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid response: %v\n", err)
		os.Exit(1)
	}
}

func postJSON(path string, payload interface{}, out interface{}) {
	data, _ := json.Marshal(payload)
	resp, err := http.Post(serverURL+path, "application/json", bytes.NewBuffer(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "Error: %s\n", string(body))
		os.Exit(1)
	}
	if err := json.Unmarshal(body, out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid response: %v\n", err)
		os.Exit(1)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
