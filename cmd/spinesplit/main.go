// Command spinesplit reads a SpineML experiment file, locates its
// referenced Low-Level network file, splits every population into
// CAP-bounded sub-populations, and writes the result with the selected
// writer.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/emer/spinesplit/model"
	"github.com/emer/spinesplit/split"
	"github.com/emer/spinesplit/writer"
	"github.com/emer/spinesplit/xmlio"
)

func main() {
	noParallel := flag.Bool("no_parallel", false, "split sub-populations serially instead of in a worker pool")
	noFormatting := flag.Bool("no_xml_formatting", false, "disable reader-friendly indentation in the XML writer")
	silent := flag.Bool("silent", false, "suppress non-fatal warning logging")
	alias := flag.Bool("alias", false, "emit the DAMSON-alias tabular writer instead of XML (requires a dst-defined network)")
	graph := flag.Bool("graph", false, "also emit a.dot sub-population graph alongside the primary writer's output")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <experiment.xml> <output-path> [flags]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	expPath, outPath := flag.Arg(0), flag.Arg(1)

	if err := run(expPath, outPath, !*noParallel, !*noFormatting, *silent, *alias, *graph); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run(expPath, outPath string, parallel, formatting, silent, alias, graph bool) error {
	expFile, err := os.Open(expPath)
	if err != nil {
		return model.Fatalf(0, model.ErrIO, "cannot open experiment file %q: %v", expPath, err)
	}
	defer expFile.Close()

	exp, err := xmlio.ParseExperiment(expFile, silent)
	if err != nil {
		return err
	}

	networkPath := exp.NetworkLayerURL
	if !filepath.IsAbs(networkPath) {
		networkPath = filepath.Join(filepath.Dir(expPath), networkPath)
	}

	infoFile, err := os.Open(networkPath)
	if err != nil {
		return model.Fatalf(0, model.ErrIO, "cannot open network file %q: %v", networkPath, err)
	}
	ip := &xmlio.InfoPass{Cap: model.DefaultCap, Silent: silent}
	m, err := ip.Run(infoFile)
	infoFile.Close()
	if err != nil {
		return err
	}

	if alias && m.Mode.Mode() != model.ModeProjDefinedAtDst {
		return model.Fatalf(0, model.ErrMode, "DAMSON alias writer requires a dst-defined network (ProjDefinedAtDst)")
	}

	out, err := os.Create(outPath)
	if err != nil {
		return model.Fatalf(0, model.ErrIO, "cannot open output file %q: %v", outPath, err)
	}
	defer out.Close()

	var w writer.Writer
	if alias {
		w, err = writer.NewDAMSONWriter(out, m.Mode.Mode())
		if err != nil {
			return err
		}
	} else {
		w = writer.NewXMLWriter(out, formatting)
	}

	var dw *writer.DOTWriter
	if graph {
		dotFile, err := os.Create(outPath + ".dot")
		if err != nil {
			return model.Fatalf(0, model.ErrIO, "cannot open graph output file: %v", err)
		}
		defer dotFile.Close()
		dw = writer.NewDOTWriter(dotFile)
	}

	fullFile, err := os.Open(networkPath)
	if err != nil {
		return model.Fatalf(0, model.ErrIO, "cannot reopen network file %q: %v", networkPath, err)
	}
	defer fullFile.Close()

	fp := &xmlio.FullPass{Cap: model.DefaultCap, Silent: silent, BaseDir: filepath.Dir(networkPath)}
	if err := fp.Run(fullFile, m); err != nil {
		return err
	}

	for _, pop := range m.Populations {
		subs, err := split.SplitPopulation(pop, m, m.Cap, parallel)
		if err != nil {
			return err
		}
		if err := w.WritePopulation(pop, subs); err != nil {
			return err
		}
		if dw != nil {
			if err := dw.WritePopulation(pop, subs); err != nil {
				return err
			}
		}
	}

	if err := w.Close(); err != nil {
		return err
	}
	if dw != nil {
		if err := dw.Close(); err != nil && !silent {
			log.Printf("warning: graph output not written: %v", err)
		}
	}
	return nil
}
