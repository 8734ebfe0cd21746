package cli

import (
	"crypto/ecdsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"os"
	"path/filepath"
	"strings"

	"github.com/effective-security/x/fileutil"
	"github.com/effective-security/x/guid"
	"github.com/effective-security/xcsr/batch"
	"github.com/effective-security/xcsr/cryptoprov"
	"github.com/effective-security/xcsr/csr"
	"github.com/effective-security/xcsr/export"
	"github.com/spf13/afero"
)

func (s *testSuite) TestGenerate() {
	output := filepath.Join(s.tmpdir, guid.MustCreate()+".csv")
	cmd := GenerateCmd{
		CNRange:     "YDL0001-YDL0010",
		KeyType:     "EC_P384",
		SignHashAlg: csr.MatchIssuer,
		UniqueID:    "fleet-7",
		Output:      output,
		Workers:     3,
	}
	s.Require().NoError(cmd.Run(s.ctl))
	s.NoError(fileutil.FileExists(output))

	var res batch.Result
	s.Require().NoError(json.Unmarshal(s.Out.Bytes(), &res))
	s.Equal(batch.Result{
		Success:    true,
		Message:    "generated 10 CSRs",
		Total:      10,
		OutputPath: output,
	}, res)

	s.HasTextInFile(output,
		"subject,signHashAlg,notBefore,notAfter,uniqueId,csr,keyPairType,privateKey",
		"CN=YDL0001,SHA256,",
		"CN=YDL0010,SHA256,",
		"EC_P-384",
		"fleet-7",
	)

	s.Out.Reset()
	s.Require().NoError((&VerifyCmd{File: output}).Run(s.ctl))

	var vr VerifyResult
	s.Require().NoError(json.Unmarshal(s.Out.Bytes(), &vr))
	s.Equal(10, vr.Total)
	s.Equal([]string{"EC_P-384"}, vr.KeyTypes)
	s.Require().Len(vr.CommonNames, 10)
	s.Equal("YDL0001", vr.CommonNames[0])
	s.Equal("YDL0010", vr.CommonNames[9])
}

func (s *testSuite) TestGenerateDefaults() {
	cmd := GenerateCmd{
		CNRange: "D1-D1",
		Output:  filepath.Join(s.tmpdir, guid.MustCreate()+".csv"),
	}
	req, err := cmd.generationRequest()
	s.Require().NoError(err)
	s.Equal(&batch.GenerationRequest{
		CNRange:         "D1-D1",
		SubjectTemplate: "CN={CN}",
		KeyType:         "RSA_2048",
		SignHashAlg:     "SHA256",
		OutputPath:      cmd.Output,
	}, req)

	s.Require().NoError(cmd.Run(s.ctl))
	s.HasText(`"success": true`, `"total": 1`)
	s.HasTextInFile(cmd.Output, "CN=D1,SHA256,", "RSA_2048")
}

func (s *testSuite) TestGenerateWithRequestFile() {
	output := filepath.Join(s.tmpdir, guid.MustCreate()+".csv")
	cmd := GenerateCmd{
		Request: "testdata/request.yaml",
		// flags override the file
		CNRange: "OVR01-OVR02",
		Output:  output,
	}
	req, err := cmd.generationRequest()
	s.Require().NoError(err)
	s.Equal("OVR01-OVR02", req.CNRange)
	s.Equal("CN={CN},O=Effective Security", req.SubjectTemplate)
	s.Equal("EC_P256", req.KeyType)
	s.Equal("SHA384", req.SignHashAlg)
	s.Equal("dev.local", req.SANs)
	s.Equal(output, req.OutputPath)

	s.Require().NoError(cmd.Run(s.ctl))
	s.HasText(`"total": 2`)
	s.HasTextInFile(output, "sans", "CN=OVR01,O=Effective Security", "dev.local", "EC_P-256")

	tbl, err := export.Load(afero.NewOsFs(), output)
	s.Require().NoError(err)
	s.Equal("SHA384", tbl.Get(1, export.ColumnSignHashAlg))
}

func (s *testSuite) TestGenerateFailures() {
	output := filepath.Join(s.tmpdir, guid.MustCreate()+".csv")

	err := (&GenerateCmd{CNRange: "YDL0001", Output: output}).Run(s.ctl)
	s.Require().Error(err)
	s.Contains(err.Error(), "expected format: YDL0001-YDL0010")

	err = (&GenerateCmd{CNRange: "A1-A2", KeyType: "DSA", Output: output}).Run(s.ctl)
	s.Require().Error(err)
	s.Contains(err.Error(), "unsupported key type")

	err = (&GenerateCmd{CNRange: "A1-A2"}).Run(s.ctl)
	s.Require().Error(err)
	s.Contains(err.Error(), "output path is not specified")

	err = (&GenerateCmd{Request: "testdata/missing.yaml"}).Run(s.ctl)
	s.Require().Error(err)

	s.Error(fileutil.FileExists(output))
	s.Empty(s.Out.String())
}

func (s *testSuite) TestCryptoProv() {
	prov, err := s.ctl.CryptoProv()
	s.Require().NoError(err)
	s.Equal("inmem", prov.Manufacturer())

	c := &Cli{CryptoCfg: "../../../cryptoprov/testdata/inmem.yaml"}
	prov, err = c.CryptoProv()
	s.Require().NoError(err)
	s.Equal("inmem", prov.Manufacturer())

	c = &Cli{CryptoCfg: "../../../cryptoprov/testdata/unknown.yaml"}
	_, err = c.CryptoProv()
	s.Require().Error(err)
	s.Contains(err.Error(), "unable to initialize key provider, registered: inmem")
	s.Contains(err.Error(), "provider not registered: NetHSM")
}

func (s *testSuite) TestCsrInfo() {
	prov, err := s.ctl.CryptoProv()
	s.Require().NoError(err)

	g := csr.NewGenerator(prov)
	csrPEM, _, err := g.Generate("DEV0042", csr.ECP256, csr.SHA256)
	s.Require().NoError(err)

	file := filepath.Join(s.tmpdir, guid.MustCreate()+".csr")
	s.Require().NoError(os.WriteFile(file, csrPEM, 0600))

	s.Require().NoError((&CsrInfoCmd{Csr: file}).Run(s.ctl))

	var info CsrInfo
	s.Require().NoError(json.Unmarshal(s.Out.Bytes(), &info))
	s.Equal("CN=DEV0042", info.Subject)
	s.Equal("DEV0042", info.CommonName)
	s.Equal("ECDSA-SHA256", info.SignatureAlgorithm)
	s.Equal("EC_P256", info.KeyType)
	s.Require().NotNil(info.Key)
	s.Equal("ECDSA", info.Key.Type)
	s.Equal(256, info.Key.KeySize)

	s.Out.Reset()
	s.ctl.WithReader(strings.NewReader(string(csrPEM)))
	s.Require().NoError((&CsrInfoCmd{Csr: "-"}).Run(s.ctl))
	s.HasText(`"common_name": "DEV0042"`)

	err = (&CsrInfoCmd{Csr: filepath.Join(s.tmpdir, "missing.csr")}).Run(s.ctl)
	s.Require().Error(err)
	s.Contains(err.Error(), "unable to load CSR file")

	bad := filepath.Join(s.tmpdir, guid.MustCreate()+".csr")
	s.Require().NoError(os.WriteFile(bad, []byte("not a CSR"), 0600))
	err = (&CsrInfoCmd{Csr: bad}).Run(s.ctl)
	s.Require().Error(err)
	s.Contains(err.Error(), "unable to parse CSR")
}

func (s *testSuite) TestVerifyFailures() {
	output := filepath.Join(s.tmpdir, guid.MustCreate()+".csv")
	s.Require().NoError((&GenerateCmd{CNRange: "V1-V2", KeyType: "EC_P256", Output: output}).Run(s.ctl))

	tbl, err := export.Load(afero.NewOsFs(), output)
	s.Require().NoError(err)

	rewrite := func(name string, edit func(r *export.Record, i int)) string {
		var rows []*export.Record
		for i := 0; i < tbl.Len(); i++ {
			r := &export.Record{
				Subject:     tbl.Get(i, export.ColumnSubject),
				SignHashAlg: tbl.Get(i, export.ColumnSignHashAlg),
				CSR:         []byte(tbl.Get(i, export.ColumnCSR)),
				KeyPairType: tbl.Get(i, export.ColumnKeyPairType),
				PrivateKey:  []byte(tbl.Get(i, export.ColumnPrivateKey)),
			}
			edit(r, i)
			rows = append(rows, r)
		}
		file := filepath.Join(s.tmpdir, name+guid.MustCreate()+".csv")
		s.Require().NoError(export.NewOS().Export(rows, file))
		return file
	}

	tcases := []struct {
		name string
		edit func(r *export.Record, i int)
		exp  string
	}{
		{
			name: "swapped keys",
			edit: func(r *export.Record, i int) {
				r.PrivateKey = []byte(tbl.Get(1-i, export.ColumnPrivateKey))
			},
			exp: "row 1: private key does not match CSR",
		},
		{
			name: "bad csr",
			edit: func(r *export.Record, i int) {
				if i == 1 {
					r.CSR = []byte("garbage")
				}
			},
			exp: "row 2: invalid CSR",
		},
		{
			name: "bad key",
			edit: func(r *export.Record, _ int) { r.PrivateKey = nil },
			exp:  "row 1: invalid private key",
		},
		{
			name: "sec1 key",
			edit: func(r *export.Record, _ int) {
				key, err := cryptoprov.ParsePKCS8PrivateKeyPEM(r.PrivateKey)
				s.Require().NoError(err)
				der, err := x509.MarshalECPrivateKey(key.(*ecdsa.PrivateKey))
				s.Require().NoError(err)
				r.PrivateKey = pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der})
			},
			exp: "row 1: private key is SEC1, expected PKCS#8",
		},
		{
			name: "key type",
			edit: func(r *export.Record, _ int) { r.KeyPairType = "RSA_2048" },
			exp:  "row 1: key type RSA_2048 does not match EC_P-256",
		},
		{
			name: "hash",
			edit: func(r *export.Record, _ int) { r.SignHashAlg = "SHA512" },
			exp:  "row 1: signature algorithm ECDSA-SHA256 does not match SHA512",
		},
	}
	for _, tc := range tcases {
		s.Run(tc.name, func() {
			s.Out.Reset()
			err := (&VerifyCmd{File: rewrite(strings.ReplaceAll(tc.name, " ", "_"), tc.edit)}).Run(s.ctl)
			s.Require().Error(err)
			s.Contains(err.Error(), tc.exp)
			s.Empty(s.Out.String())
		})
	}

	missing := filepath.Join(s.tmpdir, guid.MustCreate()+".csv")
	s.Require().NoError(os.WriteFile(missing, []byte("subject,csr\nCN=a,x\n"), 0600))
	err = (&VerifyCmd{File: missing}).Run(s.ctl)
	s.Require().Error(err)
	s.Contains(err.Error(), "missing signHashAlg column")

	err = (&VerifyCmd{File: filepath.Join(s.tmpdir, "missing.csv")}).Run(s.ctl)
	s.Require().Error(err)
	s.Contains(err.Error(), "open file")
}

func (s *testSuite) TestKeyTypes() {
	s.Require().NoError((&KeyTypesCmd{}).Run(s.ctl))

	var list []KeyType
	s.Require().NoError(json.Unmarshal(s.Out.Bytes(), &list))
	s.Len(list, len(csr.KeyAlgorithms()))
	s.Equal(KeyType{Token: "RSA_2048", Name: "RSA_2048"}, list[0])
	s.Contains(list, KeyType{Token: "EC_P521", Name: "EC_P-521"})
}

func (s *testSuite) TestReadFile() {
	_, err := s.ctl.ReadFile("")
	s.EqualError(err, "empty file name")
}

func (s *testSuite) TestPrintYAML() {
	c := &Cli{Format: "yaml"}
	c.WithWriter(&s.Out)

	s.Require().NoError(c.Print(&batch.Result{Success: true, Message: "generated 2 CSRs", Total: 2, OutputPath: "out.csv"}))
	s.Equal("success: true\nmessage: generated 2 CSRs\ntotal: 2\noutput_path: out.csv\n", s.Out.String())

	s.Out.Reset()
	s.Require().NoError((&KeyTypesCmd{}).Run(c))
	s.HasText("- token: RSA_2048\n  name: RSA_2048\n", "- token: EC_P256\n  name: EC_P-256\n")
	s.HasNoText("{")
}
